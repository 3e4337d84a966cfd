package entities

import (
	"time"

	"meeting-sync/constant"
)

// Meeting mirrors one remote meeting occurrence. The provider reuses meeting
// IDs across recurring occurrences, so uniqueness is scoped to the pair
// (meeting_id, start_at). Rows are never hard-deleted: a row left DISABLED
// after a full sync pass means the occurrence was deleted remotely.
type Meeting struct {
	ID        uint64                 `json:"id" gorm:"primaryKey"`
	MeetingID int64                  `json:"meeting_id" gorm:"type:bigint;not null;uniqueIndex:unique_meeting_occurrence"`
	Topic     string                 `json:"topic" gorm:"type:varchar(255);not null"`
	StartAt   time.Time              `json:"start_at" gorm:"type:timestamptz;not null;uniqueIndex:unique_meeting_occurrence"`
	Duration  int                    `json:"duration" gorm:"not null"`
	ZoomURL   string                 `json:"zoom_url" gorm:"type:varchar(255);not null"`
	Status    constant.MeetingStatus `json:"status" gorm:"type:varchar(10);not null;default:'ENABLED';index:idx_meetings_status"`

	ZoomRedirectionURL          *string    `json:"zoom_redirection_url" gorm:"type:varchar(255)"`
	ZoomRedirectionURLEnableAt  *time.Time `json:"zoom_redirection_url_enable_at" gorm:"type:timestamptz"`
	ZoomRedirectionURLDisableAt *time.Time `json:"zoom_redirection_url_disable_at" gorm:"type:timestamptz"`

	LivestreamURL                     *string    `json:"livestream_url" gorm:"type:varchar(255)"`
	LivestreamStartAt                 *time.Time `json:"livestream_start_at" gorm:"type:timestamptz;index:idx_meetings_livestream_start_at"`
	LivestreamRedirectionURL          *string    `json:"livestream_redirection_url" gorm:"type:varchar(255)"`
	LivestreamRedirectionURLEnableAt  *time.Time `json:"livestream_redirection_url_enable_at" gorm:"type:timestamptz"`
	LivestreamRedirectionURLDisableAt *time.Time `json:"livestream_redirection_url_disable_at" gorm:"type:timestamptz"`

	LivestreamConfigurationID *uint64                  `json:"livestream_configuration_id" gorm:"type:bigint"`
	LivestreamConfiguration   *LivestreamConfiguration `json:"livestream_configuration,omitempty" gorm:"foreignKey:LivestreamConfigurationID"`

	CreatedAt time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Meeting) TableName() string {
	return "meetings"
}
