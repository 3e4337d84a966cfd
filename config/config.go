package config

import (
	"database/sql"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `yaml:"app"`
	DB       *sql.DB  `yaml:"db"`
	Server   Server   `yaml:"server"`
	Zoom     Zoom     `yaml:"zoom"`
	Telegram Telegram `yaml:"telegram"`
	Webhook  Webhook  `yaml:"webhook"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
}

type Zoom struct {
	BaseURI string `yaml:"base_uri"`
	Token   string `yaml:"token"`
	UserID  string `yaml:"user_id"`
	// WebhookSecret is carried and logged but not verified against payload
	// content; only the source IP guards the webhook endpoint.
	WebhookSecret string `yaml:"webhook_secret"`
}

type Telegram struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type Webhook struct {
	// AllowedIPs is a semicolon-delimited list of source addresses the
	// provider delivers webhooks from.
	AllowedIPs      string `yaml:"allowed_ips"`
	TestIP          string `yaml:"test_ip"`
	MuteTestStreams bool   `yaml:"mute_test_streams"`
}

// Allowed reports whether ip is in the allow-list or equals the test address.
func (w Webhook) Allowed(ip string) bool {
	for _, allowed := range strings.Split(w.AllowedIPs, ";") {
		if allowed != "" && allowed == ip {
			return true
		}
	}
	return w.TestIP != "" && ip == w.TestIP
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", viper.GetString("postgresql_host"))
	if err != nil {
		return nil, err
	}

	return &Config{
		App: App{
			Environment: viper.GetString("app.environment"),
			Host:        viper.GetString("app.host"),
			Protocol:    viper.GetString("app.protocol"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
		},
		Zoom: Zoom{
			BaseURI:       viper.GetString("zoom.base_uri"),
			Token:         viper.GetString("zoom.token"),
			UserID:        viper.GetString("zoom.user_id"),
			WebhookSecret: viper.GetString("zoom.webhook_secret"),
		},
		Telegram: Telegram{
			BotToken: viper.GetString("telegram.bot_token"),
			ChatID:   viper.GetString("telegram.chat_id"),
		},
		Webhook: Webhook{
			AllowedIPs:      viper.GetString("webhook.allowed_ips"),
			TestIP:          viper.GetString("webhook.test_ip"),
			MuteTestStreams: viper.GetBool("webhook.mute_test_streams"),
		},
		DB: db,
	}, nil
}
