package service

import (
	"context"

	"github.com/rs/zerolog"

	"meeting-sync/entities"
	"meeting-sync/pkg/telegram"
)

// notify sends one best-effort operator notification. Delivery failures are
// logged at warn level and swallowed so they never abort the primary pass.
func notify(ctx context.Context, n telegram.Notifier, message string, meeting *entities.Meeting) {
	if err := n.Notify(ctx, message, meeting); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("message", message).Msg("failed to send notification")
	}
}
