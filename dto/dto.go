package dto

// WebhookEvent is the raw inbound webhook body. Only the fields the handler
// dispatches on are decoded; everything else is ignored.
type WebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

type WebhookPayload struct {
	AccountID string        `json:"account_id"`
	Object    WebhookObject `json:"object"`
}

type WebhookObject struct {
	ID          int64              `json:"id"`
	Topic       string             `json:"topic"`
	Participant WebhookParticipant `json:"participant"`
	StreamURL   string             `json:"stream_url"`
	StreamKey   string             `json:"stream_key"`
}

type WebhookParticipant struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// MeetingListPage is one page of the provider's upcoming-meetings listing.
// An empty NextPageToken means the listing is exhausted.
type MeetingListPage struct {
	PageSize      int               `json:"page_size"`
	TotalRecords  int               `json:"total_records"`
	NextPageToken string            `json:"next_page_token"`
	Meetings      []ProviderMeeting `json:"meetings"`
}

type ProviderMeeting struct {
	ID        int64  `json:"id"`
	Type      int    `json:"type"`
	Topic     string `json:"topic"`
	Duration  int    `json:"duration"`
	JoinURL   string `json:"join_url"`
	StartTime string `json:"start_time"`
}

// LivestreamSettings is the body of the provider's livestream configure call.
type LivestreamSettings struct {
	StreamURL string `json:"stream_url"`
	StreamKey string `json:"stream_key"`
	PageURL   string `json:"page_url"`
}
