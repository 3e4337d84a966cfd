package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"meeting-sync/config"
	"meeting-sync/constant"
	"meeting-sync/dto"
)

const (
	requestTimeout = 5 * time.Second
	pageSize       = 10
)

// Client wraps the provider's REST API. Calls are synchronous with a fixed
// timeout and are never retried here; retry happens on the next scheduled
// invocation.
type Client interface {
	// ListUpcomingMeetings fetches one page of the upcoming listing. A nil
	// token requests the first page; the returned page carries an empty
	// NextPageToken when there are no more pages.
	ListUpcomingMeetings(ctx context.Context, nextPageToken *string) (*dto.MeetingListPage, error)
	UpdateLivestream(ctx context.Context, meetingID int64, settings dto.LivestreamSettings) error
	UpdateLivestreamStatus(ctx context.Context, meetingID int64, action constant.LivestreamAction, displayName string) error
}

// APIError is a non-2xx provider response, kept whole for logging.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zoom: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type client struct {
	baseURI    string
	token      string
	userID     string
	httpClient *http.Client
}

func NewClient(cfg config.Zoom) Client {
	return &client{
		baseURI: cfg.BaseURI,
		token:   cfg.Token,
		userID:  cfg.UserID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *client) ListUpcomingMeetings(ctx context.Context, nextPageToken *string) (*dto.MeetingListPage, error) {
	path := fmt.Sprintf("/users/%s/meetings", c.userID)
	query := url.Values{}
	query.Set("type", "upcoming")
	query.Set("page_size", strconv.Itoa(pageSize))
	if nextPageToken != nil {
		query.Set("next_page_token", *nextPageToken)
	}

	body, err := c.do(ctx, http.MethodGet, path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	page := &dto.MeetingListPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, fmt.Errorf("zoom: decode meeting list: %w", err)
	}
	return page, nil
}

func (c *client) UpdateLivestream(ctx context.Context, meetingID int64, settings dto.LivestreamSettings) error {
	path := fmt.Sprintf("/meetings/%d/livestream", meetingID)
	_, err := c.do(ctx, http.MethodPatch, path, settings)
	return err
}

func (c *client) UpdateLivestreamStatus(ctx context.Context, meetingID int64, action constant.LivestreamAction, displayName string) error {
	path := fmt.Sprintf("/meetings/%d/livestream/status", meetingID)
	payload := map[string]any{
		"action": action.String(),
		"settings": map[string]any{
			"active_speaker_name": false,
			"display_name":        displayName,
		},
	}
	_, err := c.do(ctx, http.MethodPatch, path, payload)
	return err
}

func (c *client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURI+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
