package entities

import (
	"time"

	"meeting-sync/constant"
)

// LivestreamConfiguration is an operator-managed bundle of stream target
// credentials. Meetings reference a configuration but never mutate it.
type LivestreamConfiguration struct {
	ID            uint64    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null;default:''"`
	LivestreamURL string    `json:"livestream_url" gorm:"type:varchar(1024);not null"`
	LivestreamKey string    `json:"livestream_key" gorm:"type:varchar(512);not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (LivestreamConfiguration) TableName() string {
	return "livestream_configurations"
}

// IsTest reports whether this configuration is the designated test target.
func (c LivestreamConfiguration) IsTest() bool {
	return c.Name == constant.TestConfigurationName
}
