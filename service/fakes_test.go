package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"meeting-sync/constant"
	"meeting-sync/entities"
)

// fakeRepo is an in-memory MeetingRepository keyed the way the real store is,
// by (meeting_id, start_at).
type fakeRepo struct {
	meetings     map[string]*entities.Meeting
	candidate    *entities.Meeting
	testConfig   *entities.LivestreamConfiguration
	disableErr   error
	upsertErr    error
	disableCalls int
	upsertCalls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meetings: map[string]*entities.Meeting{}}
}

func meetingKey(meetingID int64, startAt time.Time) string {
	return fmt.Sprintf("%d|%s", meetingID, startAt.UTC().Format(time.RFC3339))
}

func (f *fakeRepo) GetDB() *gorm.DB {
	return nil
}

func (f *fakeRepo) DisableUpcoming(_ context.Context, from time.Time) error {
	f.disableCalls++
	if f.disableErr != nil {
		return f.disableErr
	}
	for _, meeting := range f.meetings {
		if !meeting.StartAt.Before(from) {
			meeting.Status = constant.MeetingStatusDisabled
		}
	}
	return nil
}

func (f *fakeRepo) Upsert(_ context.Context, meeting *entities.Meeting) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := meetingKey(meeting.MeetingID, meeting.StartAt)
	if existing, ok := f.meetings[key]; ok {
		existing.Topic = meeting.Topic
		existing.Duration = meeting.Duration
		existing.ZoomURL = meeting.ZoomURL
		existing.Status = meeting.Status
		return nil
	}
	stored := *meeting
	f.meetings[key] = &stored
	return nil
}

func (f *fakeRepo) FindLivestreamCandidate(context.Context, time.Time, time.Time) (*entities.Meeting, error) {
	return f.candidate, nil
}

func (f *fakeRepo) FindMeetingInWindow(context.Context, time.Time, time.Time) (*entities.Meeting, error) {
	return f.candidate, nil
}

func (f *fakeRepo) FindTestConfiguration(context.Context) (*entities.LivestreamConfiguration, error) {
	return f.testConfig, nil
}

func (f *fakeRepo) ListUpcoming(_ context.Context, from time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	for _, meeting := range f.meetings {
		if meeting.Status == constant.MeetingStatusEnabled && !meeting.StartAt.Before(from) {
			meetings = append(meetings, meeting)
		}
	}
	return meetings, nil
}

func (f *fakeRepo) get(meetingID int64, startAt time.Time) *entities.Meeting {
	return f.meetings[meetingKey(meetingID, startAt)]
}

func (f *fakeRepo) seed(meeting *entities.Meeting) {
	f.meetings[meetingKey(meeting.MeetingID, meeting.StartAt)] = meeting
}

type fakeNotifier struct {
	messages []string
	failWith error
}

func (f *fakeNotifier) Notify(_ context.Context, message string, _ *entities.Meeting) error {
	f.messages = append(f.messages, message)
	return f.failWith
}
