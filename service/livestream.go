package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"meeting-sync/constant"
	"meeting-sync/dto"
	"meeting-sync/entities"
	"meeting-sync/pkg/telegram"
	"meeting-sync/pkg/zoom"
	"meeting-sync/repository"
)

// testStreamOffset pushes the test flow's window two minutes ahead so a test
// run never races the production trigger for the same meeting.
const (
	triggerWindow    = time.Minute
	testStreamOffset = 2 * time.Minute
	testStreamLength = 30 * time.Second
)

// LivestreamService drives the provider's livestream relay around a meeting's
// scheduled stream time. It is meant to be invoked once per minute; the
// selection window is half-open, [now, now+1m), inclusive at the invocation
// instant, so a meeting on an exact minute boundary fires in exactly one tick.
type LivestreamService interface {
	StartLivestream(ctx context.Context)
	StartTestLivestream(ctx context.Context)
}

type livestreamService struct {
	repo     repository.MeetingRepository
	zoom     zoom.Client
	notifier telegram.Notifier
	now      func() time.Time
	// stopDelay is how long a test stream stays up before the stop call.
	stopDelay time.Duration
}

func NewLivestreamService(repo repository.MeetingRepository, zoomClient zoom.Client, notifier telegram.Notifier) LivestreamService {
	return &livestreamService{
		repo:      repo,
		zoom:      zoomClient,
		notifier:  notifier,
		now:       time.Now,
		stopDelay: testStreamLength,
	}
}

// StartLivestream processes at most one meeting per tick, earliest
// livestream_start_at first. If several meetings qualify in the same window
// the rest wait for the next tick.
func (s *livestreamService) StartLivestream(ctx context.Context) {
	log := zerolog.Ctx(ctx)
	now := s.now()

	meeting, err := s.repo.FindLivestreamCandidate(ctx, now, now.Add(triggerWindow))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up livestream candidate")
		return
	}
	if meeting == nil {
		return
	}

	configuration := meeting.LivestreamConfiguration
	log.Info().Int64("meeting_id", meeting.MeetingID).Str("configuration", configuration.Name).Msg("starting livestream")

	if !s.configure(ctx, meeting, configuration) {
		return
	}
	s.start(ctx, meeting, configuration)
}

// StartTestLivestream runs the full relay cycle against the TEST
// configuration for a meeting two to three minutes out, then stops the
// stream after a fixed delay.
func (s *livestreamService) StartTestLivestream(ctx context.Context) {
	log := zerolog.Ctx(ctx)
	now := s.now()

	meeting, err := s.repo.FindMeetingInWindow(ctx, now.Add(testStreamOffset), now.Add(testStreamOffset+triggerWindow))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up test livestream candidate")
		return
	}
	if meeting == nil {
		return
	}

	configuration, err := s.repo.FindTestConfiguration(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up test configuration")
		return
	}
	if configuration == nil {
		log.Warn().Msg("no test livestream configuration defined")
		return
	}

	log.Info().Int64("meeting_id", meeting.MeetingID).Msg("starting test livestream")

	if !s.configure(ctx, meeting, configuration) {
		return
	}
	if !s.start(ctx, meeting, configuration) {
		return
	}

	time.Sleep(s.stopDelay)

	if err := s.zoom.UpdateLivestreamStatus(ctx, meeting.MeetingID, constant.LivestreamActionStop, configuration.Name); err != nil {
		log.Error().Err(err).Int64("meeting_id", meeting.MeetingID).Msg("failed to stop test livestream")
		notify(ctx, s.notifier, fmt.Sprintf("Failed to stop test livestream for meeting %d (%s).", meeting.MeetingID, meeting.Topic), meeting)
		return
	}
	notify(ctx, s.notifier, fmt.Sprintf("Test livestream for meeting %d (%s) stopped.", meeting.MeetingID, meeting.Topic), meeting)
}

// configure patches the meeting's livestream endpoint with the stream target.
// It reports whether the step succeeded; on failure the remaining steps for
// this meeting must not run.
func (s *livestreamService) configure(ctx context.Context, meeting *entities.Meeting, configuration *entities.LivestreamConfiguration) bool {
	settings := dto.LivestreamSettings{
		StreamURL: configuration.LivestreamURL,
		StreamKey: configuration.LivestreamKey,
	}
	if meeting.LivestreamRedirectionURL != nil {
		settings.PageURL = *meeting.LivestreamRedirectionURL
	}

	if err := s.zoom.UpdateLivestream(ctx, meeting.MeetingID, settings); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("meeting_id", meeting.MeetingID).Msg("failed to configure livestream")
		notify(ctx, s.notifier, fmt.Sprintf("Failed to configure livestream for meeting %d (%s).", meeting.MeetingID, meeting.Topic), meeting)
		return false
	}

	notify(ctx, s.notifier, fmt.Sprintf("Livestream for meeting %d (%s) configured with %s.", meeting.MeetingID, meeting.Topic, configuration.Name), meeting)
	return true
}

func (s *livestreamService) start(ctx context.Context, meeting *entities.Meeting, configuration *entities.LivestreamConfiguration) bool {
	if err := s.zoom.UpdateLivestreamStatus(ctx, meeting.MeetingID, constant.LivestreamActionStart, configuration.Name); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("meeting_id", meeting.MeetingID).Msg("failed to start livestream")
		notify(ctx, s.notifier, fmt.Sprintf("Failed to start livestream for meeting %d (%s).", meeting.MeetingID, meeting.Topic), meeting)
		return false
	}

	notify(ctx, s.notifier, fmt.Sprintf("Livestream for meeting %d (%s) started with %s.", meeting.MeetingID, meeting.Topic, configuration.Name), meeting)
	return true
}
