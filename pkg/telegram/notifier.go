package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meeting-sync/config"
	"meeting-sync/entities"
)

const requestTimeout = 5 * time.Second

// Notifier delivers a human-readable message to the operator channel. When a
// meeting is passed, the message carries a "Join Meeting" button. Delivery is
// best effort: callers log errors and move on.
type Notifier interface {
	Notify(ctx context.Context, message string, meeting *entities.Meeting) error
}

type notifier struct {
	baseURI    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

func NewNotifier(cfg config.Telegram) Notifier {
	return &notifier{
		baseURI:  "https://api.telegram.org",
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type sendMessageRequest struct {
	ChatID      string       `json:"chat_id"`
	Text        string       `json:"text"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type inlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (n *notifier) Notify(ctx context.Context, message string, meeting *entities.Meeting) error {
	payload := sendMessageRequest{
		ChatID: n.chatID,
		Text:   message,
	}
	if meeting != nil {
		payload.ReplyMarkup = &replyMarkup{
			InlineKeyboard: [][]inlineButton{{
				{Text: "Join Meeting", URL: meeting.ZoomURL},
			}},
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURI, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram: sendMessage returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
