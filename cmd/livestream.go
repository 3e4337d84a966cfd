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

// livestream runs one trigger tick and exits; cron invokes it once per
// minute. With --test it runs the test flow against the TEST configuration
// instead.
func livestream(cfg *config.Config) *cobra.Command {
	var testRun bool

	command := &cobra.Command{
		Use:   "livestream",
		Short: "run one livestream trigger tick",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := server2.SetupLogger(cfg)
			if err := config.WaitForPostgres(ctx, cfg.DB); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("WaitForPostgres")
				return
			}

			repo := repository.NewRepo(cfg.DB)
			notifier := telegram.NewNotifier(cfg.Telegram)
			zoomClient := zoom.NewClient(cfg.Zoom)

			livestreamService := service.NewLivestreamService(repo, zoomClient, notifier)
			if testRun {
				livestreamService.StartTestLivestream(ctx)
				return
			}
			livestreamService.StartLivestream(ctx)
		},
	}
	command.Flags().BoolVar(&testRun, "test", false, "run a test livestream cycle against the TEST configuration")

	return command
}
