package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sjsage522/pricewatcher/logger"
	apperrors "sjsage522/pricewatcher/pkg/errors"
)

const sendTimeout = 10 * time.Second

// TelegramNotifier delivers messages through the Telegram bot API. When
// credentials are absent the notifier is disabled and Notify is a silent
// no-op rather than an error.
type TelegramNotifier struct {
	client   *http.Client
	apiURL   string
	botToken string
	chatID   string
	enabled  bool
	log      *logger.Logger
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a notifier for the given bot credentials.
// apiURL defaults to the public Telegram endpoint when empty.
func NewTelegramNotifier(botToken, chatID, apiURL string) *TelegramNotifier {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}

	n := &TelegramNotifier{
		client:   &http.Client{Timeout: sendTimeout},
		apiURL:   strings.TrimRight(apiURL, "/"),
		botToken: botToken,
		chatID:   chatID,
		enabled:  botToken != "" && chatID != "",
		log:      logger.ForNotifier(),
	}

	if !n.enabled {
		n.log.Warn().Msg("Telegram credentials absent; notifications disabled")
	}
	return n
}

// Enabled reports whether the notifier will actually deliver messages
func (n *TelegramNotifier) Enabled() bool {
	return n.enabled
}

// Notify sends a Markdown message to the configured chat
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	if !n.enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	payload := url.Values{
		"chat_id":    {n.chatID},
		"text":       {message},
		"parse_mode": {"Markdown"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return apperrors.NewNotification("telegram", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return apperrors.NewNotification("telegram", "failed to send message", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewNotification("telegram",
			fmt.Sprintf("sendMessage returned status %d", resp.StatusCode), nil)
	}
	return nil
}
