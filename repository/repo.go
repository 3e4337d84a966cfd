package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"meeting-sync/constant"
	"meeting-sync/entities"
)

type MeetingRepository interface {
	GetDB() *gorm.DB
	// DisableUpcoming marks every meeting starting at or after from as
	// DISABLED in a single statement. The sync pass re-enables whatever the
	// provider still knows about; the rest stays disabled as a tombstone.
	DisableUpcoming(ctx context.Context, from time.Time) error
	// Upsert creates or updates the row keyed by (meeting_id, start_at).
	Upsert(ctx context.Context, meeting *entities.Meeting) error
	// FindLivestreamCandidate returns the enabled meeting with a livestream
	// configuration whose livestream_start_at falls in [from, until),
	// earliest first, or nil when none qualifies.
	FindLivestreamCandidate(ctx context.Context, from, until time.Time) (*entities.Meeting, error)
	// FindMeetingInWindow is the candidate lookup without the configuration
	// requirement, used by the test livestream flow.
	FindMeetingInWindow(ctx context.Context, from, until time.Time) (*entities.Meeting, error)
	FindTestConfiguration(ctx context.Context) (*entities.LivestreamConfiguration, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*entities.Meeting, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) MeetingRepository {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	return &repo{
		db: gormDB,
	}
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) DisableUpcoming(ctx context.Context, from time.Time) error {
	err := r.GetDB().WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("start_at >= ?", from).
		Update("status", constant.MeetingStatusDisabled).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *repo) Upsert(ctx context.Context, meeting *entities.Meeting) error {
	err := r.GetDB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "start_at"}},
			DoUpdates: clause.AssignmentColumns([]string{"topic", "duration", "zoom_url", "status", "updated_at"}),
		}).
		Create(meeting).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *repo) FindLivestreamCandidate(ctx context.Context, from, until time.Time) (*entities.Meeting, error) {
	meeting := &entities.Meeting{}
	err := r.GetDB().WithContext(ctx).
		Where("status = ?", constant.MeetingStatusEnabled).
		Where("livestream_configuration_id IS NOT NULL").
		Where("livestream_start_at >= ? AND livestream_start_at < ?", from, until).
		Order("livestream_start_at ASC").
		Preload("LivestreamConfiguration").
		First(meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

func (r *repo) FindMeetingInWindow(ctx context.Context, from, until time.Time) (*entities.Meeting, error) {
	meeting := &entities.Meeting{}
	err := r.GetDB().WithContext(ctx).
		Where("status = ?", constant.MeetingStatusEnabled).
		Where("livestream_start_at >= ? AND livestream_start_at < ?", from, until).
		Order("livestream_start_at ASC").
		First(meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

func (r *repo) FindTestConfiguration(ctx context.Context) (*entities.LivestreamConfiguration, error) {
	configuration := &entities.LivestreamConfiguration{}
	err := r.GetDB().WithContext(ctx).
		Where("name = ?", constant.TestConfigurationName).
		First(configuration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return configuration, nil
}

func (r *repo) ListUpcoming(ctx context.Context, from time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.GetDB().WithContext(ctx).
		Where("status = ?", constant.MeetingStatusEnabled).
		Where("start_at >= ?", from).
		Order("start_at ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
