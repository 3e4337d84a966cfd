package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meeting-sync/constant"
	"meeting-sync/entities"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.LivestreamConfiguration{}, &entities.Meeting{}))
	return &repo{db: db}
}

func seedMeeting(t *testing.T, r *repo, meeting *entities.Meeting) {
	t.Helper()
	require.NoError(t, r.db.Create(meeting).Error)
}

func TestDisableUpcoming(t *testing.T) {
	r := newTestRepo(t)
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	seedMeeting(t, r, &entities.Meeting{MeetingID: 1, StartAt: now.Add(-time.Hour), Topic: "past", Status: constant.MeetingStatusEnabled})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 2, StartAt: now.Add(time.Hour), Topic: "future", Status: constant.MeetingStatusEnabled})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 3, StartAt: now, Topic: "boundary", Status: constant.MeetingStatusEnabled})

	require.NoError(t, r.DisableUpcoming(context.Background(), now))

	var meetings []*entities.Meeting
	require.NoError(t, r.db.Order("meeting_id").Find(&meetings).Error)
	assert.Equal(t, constant.MeetingStatusEnabled, meetings[0].Status, "past meetings stay untouched")
	assert.Equal(t, constant.MeetingStatusDisabled, meetings[1].Status)
	assert.Equal(t, constant.MeetingStatusDisabled, meetings[2].Status, "start_at == now is upcoming")
}

func TestUpsertIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	startAt := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)

	meeting := &entities.Meeting{
		MeetingID: 123,
		StartAt:   startAt,
		Topic:     "Standup",
		Duration:  30,
		ZoomURL:   "https://zoom.example/j/123",
		Status:    constant.MeetingStatusEnabled,
	}
	require.NoError(t, r.Upsert(context.Background(), meeting))

	updated := &entities.Meeting{
		MeetingID: 123,
		StartAt:   startAt,
		Topic:     "Standup (moved)",
		Duration:  45,
		ZoomURL:   "https://zoom.example/j/123",
		Status:    constant.MeetingStatusEnabled,
	}
	require.NoError(t, r.Upsert(context.Background(), updated))

	var count int64
	require.NoError(t, r.db.Model(&entities.Meeting{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "same (meeting_id, start_at) must not duplicate")

	var got entities.Meeting
	require.NoError(t, r.db.First(&got, "meeting_id = ?", 123).Error)
	assert.Equal(t, "Standup (moved)", got.Topic)
	assert.Equal(t, 45, got.Duration)
}

func TestUpsertReenablesDisabledMeeting(t *testing.T) {
	r := newTestRepo(t)
	startAt := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)

	seedMeeting(t, r, &entities.Meeting{MeetingID: 123, StartAt: startAt, Topic: "Standup", Status: constant.MeetingStatusDisabled})

	require.NoError(t, r.Upsert(context.Background(), &entities.Meeting{
		MeetingID: 123,
		StartAt:   startAt,
		Topic:     "Standup",
		Status:    constant.MeetingStatusEnabled,
	}))

	var got entities.Meeting
	require.NoError(t, r.db.First(&got, "meeting_id = ?", 123).Error)
	assert.Equal(t, constant.MeetingStatusEnabled, got.Status)
}

func TestFindLivestreamCandidate(t *testing.T) {
	r := newTestRepo(t)
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	configuration := &entities.LivestreamConfiguration{Name: "Main", LivestreamURL: "rtmp://target", LivestreamKey: "key"}
	require.NoError(t, r.db.Create(configuration).Error)

	inWindow := now.Add(30 * time.Second)
	later := now.Add(45 * time.Second)
	outside := now.Add(2 * time.Minute)
	boundary := now.Add(time.Minute)

	seedMeeting(t, r, &entities.Meeting{MeetingID: 1, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &later, LivestreamConfigurationID: &configuration.ID})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 2, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &inWindow, LivestreamConfigurationID: &configuration.ID})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 3, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &outside, LivestreamConfigurationID: &configuration.ID})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 4, StartAt: now, Status: constant.MeetingStatusDisabled,
		LivestreamStartAt: &inWindow, LivestreamConfigurationID: &configuration.ID})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 5, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &inWindow})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 6, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &boundary, LivestreamConfigurationID: &configuration.ID})

	got, err := r.FindLivestreamCandidate(context.Background(), now, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 2, got.MeetingID, "earliest livestream_start_at wins")
	require.NotNil(t, got.LivestreamConfiguration)
	assert.Equal(t, "Main", got.LivestreamConfiguration.Name)
}

func TestFindLivestreamCandidateEmptyWindow(t *testing.T) {
	r := newTestRepo(t)
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	configuration := &entities.LivestreamConfiguration{Name: "Main", LivestreamURL: "rtmp://target", LivestreamKey: "key"}
	require.NoError(t, r.db.Create(configuration).Error)

	// Right edge is exclusive: a stream exactly one minute out belongs to
	// the next tick.
	boundary := now.Add(time.Minute)
	seedMeeting(t, r, &entities.Meeting{MeetingID: 1, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &boundary, LivestreamConfigurationID: &configuration.ID})

	got, err := r.FindLivestreamCandidate(context.Background(), now, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindMeetingInWindow(t *testing.T) {
	r := newTestRepo(t)
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	inWindow := now.Add(2*time.Minute + 10*time.Second)
	seedMeeting(t, r, &entities.Meeting{MeetingID: 7, StartAt: now, Status: constant.MeetingStatusEnabled,
		LivestreamStartAt: &inWindow})

	got, err := r.FindMeetingInWindow(context.Background(), now.Add(2*time.Minute), now.Add(3*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 7, got.MeetingID, "no configuration required for the test flow")
}

func TestFindTestConfiguration(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.FindTestConfiguration(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.db.Create(&entities.LivestreamConfiguration{Name: "Main", LivestreamURL: "rtmp://main", LivestreamKey: "a"}).Error)
	require.NoError(t, r.db.Create(&entities.LivestreamConfiguration{Name: constant.TestConfigurationName, LivestreamURL: "rtmp://test", LivestreamKey: "b"}).Error)

	got, err = r.FindTestConfiguration(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rtmp://test", got.LivestreamURL)
	assert.True(t, got.IsTest())
}

func TestListUpcoming(t *testing.T) {
	r := newTestRepo(t)
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	seedMeeting(t, r, &entities.Meeting{MeetingID: 1, StartAt: now.Add(2 * time.Hour), Topic: "second", Status: constant.MeetingStatusEnabled})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 2, StartAt: now.Add(time.Hour), Topic: "first", Status: constant.MeetingStatusEnabled})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 3, StartAt: now.Add(time.Hour), Topic: "deleted", Status: constant.MeetingStatusDisabled})
	seedMeeting(t, r, &entities.Meeting{MeetingID: 4, StartAt: now.Add(-time.Hour), Topic: "past", Status: constant.MeetingStatusEnabled})

	meetings, err := r.ListUpcoming(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "first", meetings[0].Topic)
	assert.Equal(t, "second", meetings[1].Topic)
}
