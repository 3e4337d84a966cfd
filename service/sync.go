package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"meeting-sync/constant"
	"meeting-sync/entities"
	"meeting-sync/pkg/telegram"
	"meeting-sync/pkg/zoom"
	"meeting-sync/repository"
)

// SyncService reconciles the local meeting table against the provider. The
// scheduled, manual and webhook-triggered entry points all run the same pass;
// they differ only in the notifications sent around it and the message
// returned to the caller.
type SyncService interface {
	Sync(ctx context.Context)
	ScheduledSync(ctx context.Context)
	ManualSync(ctx context.Context) string
}

type syncService struct {
	repo     repository.MeetingRepository
	zoom     zoom.Client
	notifier telegram.Notifier
	now      func() time.Time
}

func NewSyncService(repo repository.MeetingRepository, zoomClient zoom.Client, notifier telegram.Notifier) SyncService {
	return &syncService{
		repo:     repo,
		zoom:     zoomClient,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *syncService) ScheduledSync(ctx context.Context) {
	zerolog.Ctx(ctx).Info().Msg("started scheduled meeting synchronization")
	notify(ctx, s.notifier, "Scheduled meeting synchronization started.", nil)
	s.Sync(ctx)
	notify(ctx, s.notifier, "Scheduled meeting synchronization finished.", nil)
	zerolog.Ctx(ctx).Info().Msg("finished scheduled meeting synchronization")
}

func (s *syncService) ManualSync(ctx context.Context) string {
	zerolog.Ctx(ctx).Info().Msg("started manual meeting synchronization")
	s.Sync(ctx)
	zerolog.Ctx(ctx).Info().Msg("finished manual meeting synchronization")
	return "Manual sync executed successfully!"
}

// Sync never fails its caller: every provider or store error is logged,
// reported once through the notifier, and ends the pass early. A partial pass
// is accepted; the next scheduled invocation retries the whole thing.
//
// Deletion detection is a tombstone pass: every upcoming meeting is disabled
// first, then each meeting the provider still lists is upserted back to
// ENABLED. Whatever stays DISABLED was deleted remotely. Do not replace this
// with diffing.
func (s *syncService) Sync(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	if err := s.repo.DisableUpcoming(ctx, s.now()); err != nil {
		log.Error().Err(err).Msg("failed to disable upcoming meetings")
		notify(ctx, s.notifier, "Meeting synchronization failed: could not disable scheduled meetings.", nil)
		return
	}
	log.Info().Msg("scheduled meetings disabled")

	var nextPageToken *string
	for nextPageToken == nil || *nextPageToken != "" {
		page, err := s.zoom.ListUpcomingMeetings(ctx, nextPageToken)
		if err != nil {
			log.Error().Err(err).Msg("failed to list meetings")
			notify(ctx, s.notifier, "Meeting synchronization failed while listing meetings.", nil)
			return
		}
		log.Info().Int("meetings", len(page.Meetings)).Msg("list meetings requested")

		for _, remote := range page.Meetings {
			if remote.Type != constant.MeetingTypeScheduled && remote.Type != constant.MeetingTypeRecurringFixed {
				continue
			}

			startAt, err := time.Parse(time.RFC3339, remote.StartTime)
			if err != nil {
				log.Error().Err(err).Int64("meeting_id", remote.ID).Str("start_time", remote.StartTime).Msg("failed to parse meeting start time")
				continue
			}

			meeting := &entities.Meeting{
				MeetingID: remote.ID,
				StartAt:   startAt.UTC(),
				Topic:     remote.Topic,
				Duration:  remote.Duration,
				ZoomURL:   remote.JoinURL,
				Status:    constant.MeetingStatusEnabled,
			}
			if err := s.repo.Upsert(ctx, meeting); err != nil {
				log.Error().Err(err).Int64("meeting_id", remote.ID).Msg("failed to upsert meeting")
				notify(ctx, s.notifier, "Meeting synchronization failed while saving meetings.", nil)
				return
			}
		}

		nextPageToken = &page.NextPageToken
	}
}
