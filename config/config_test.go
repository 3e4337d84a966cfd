package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookAllowed(t *testing.T) {
	tests := []struct {
		name    string
		webhook Webhook
		ip      string
		want    bool
	}{
		{
			name:    "listed ip",
			webhook: Webhook{AllowedIPs: "1.2.3.4;5.6.7.8"},
			ip:      "5.6.7.8",
			want:    true,
		},
		{
			name:    "unlisted ip",
			webhook: Webhook{AllowedIPs: "1.2.3.4;5.6.7.8"},
			ip:      "9.9.9.9",
			want:    false,
		},
		{
			name:    "test ip",
			webhook: Webhook{AllowedIPs: "1.2.3.4", TestIP: "10.0.0.9"},
			ip:      "10.0.0.9",
			want:    true,
		},
		{
			name:    "empty list rejects everything",
			webhook: Webhook{},
			ip:      "1.2.3.4",
			want:    false,
		},
		{
			name:    "empty entries from trailing delimiter are ignored",
			webhook: Webhook{AllowedIPs: "1.2.3.4;"},
			ip:      "",
			want:    false,
		},
		{
			name:    "no partial match",
			webhook: Webhook{AllowedIPs: "1.2.3.45"},
			ip:      "1.2.3.4",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.webhook.Allowed(tt.ip))
		})
	}
}
