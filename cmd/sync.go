package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"meeting-sync/config"
	"meeting-sync/pkg/telegram"
	"meeting-sync/pkg/zoom"
	"meeting-sync/repository"
	server2 "meeting-sync/server"
	"meeting-sync/service"
)

// sync runs one scheduled reconciliation pass and exits; cron invokes it on
// the polling interval.
func sync(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "run one scheduled meeting synchronization pass",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := server2.SetupLogger(cfg)
			if err := config.WaitForPostgres(ctx, cfg.DB); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("WaitForPostgres")
				return
			}

			repo := repository.NewRepo(cfg.DB)
			notifier := telegram.NewNotifier(cfg.Telegram)
			zoomClient := zoom.NewClient(cfg.Zoom)

			service.NewSyncService(repo, zoomClient, notifier).ScheduledSync(ctx)
		},
	}
}
