package constant

type MeetingStatus string

const (
	MeetingStatusEnabled  MeetingStatus = "ENABLED"
	MeetingStatusDisabled MeetingStatus = "DISABLED"
)

// Zoom meeting type codes. Only these two kinds carry a fixed start time
// worth mirroring locally.
const (
	MeetingTypeScheduled      = 2
	MeetingTypeRecurringFixed = 8
)

type LivestreamAction string

const (
	LivestreamActionStart LivestreamAction = "start"
	LivestreamActionStop  LivestreamAction = "stop"
)

func (a LivestreamAction) String() string {
	return string(a)
}

// TestConfigurationName marks the livestream configuration reserved for test
// runs, by convention.
const TestConfigurationName = "TEST"

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
