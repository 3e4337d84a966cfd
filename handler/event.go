package handler

import "meeting-sync/dto"

type eventKind int

const (
	eventUnknown eventKind = iota
	eventMeetingStarted
	eventMeetingEnded
	eventParticipantJoined
	eventParticipantLeft
	eventMeetingCreated
	eventMeetingUpdated
	eventMeetingDeleted
	eventLiveStreamingStarted
	eventLiveStreamingStopped
)

// event is the closed set of webhook variants the handler dispatches on,
// resolved once from the raw body so nothing downstream switches on strings.
type event struct {
	kind        eventKind
	meetingID   int64
	topic       string
	participant string
	streamURL   string
	streamKey   string
}

// triggersSync reports whether the event invalidates the local mirror. The
// deleted case is not special: the sync pass's tombstone step covers it.
func (e event) triggersSync() bool {
	return e.kind == eventMeetingCreated || e.kind == eventMeetingUpdated || e.kind == eventMeetingDeleted
}

func classifyEvent(raw dto.WebhookEvent) event {
	kinds := map[string]eventKind{
		"meeting.started":                eventMeetingStarted,
		"meeting.ended":                  eventMeetingEnded,
		"meeting.participant_joined":     eventParticipantJoined,
		"meeting.participant_left":       eventParticipantLeft,
		"meeting.created":                eventMeetingCreated,
		"meeting.updated":                eventMeetingUpdated,
		"meeting.deleted":                eventMeetingDeleted,
		"meeting.live_streaming_started": eventLiveStreamingStarted,
		"meeting.live_streaming_stopped": eventLiveStreamingStopped,
	}

	kind, ok := kinds[raw.Event]
	if !ok {
		return event{kind: eventUnknown}
	}

	return event{
		kind:        kind,
		meetingID:   raw.Payload.Object.ID,
		topic:       raw.Payload.Object.Topic,
		participant: raw.Payload.Object.Participant.UserName,
		streamURL:   raw.Payload.Object.StreamURL,
		streamKey:   raw.Payload.Object.StreamKey,
	}
}
