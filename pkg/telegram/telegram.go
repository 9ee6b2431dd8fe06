package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Notifier delivers the daily report to a Telegram chat. An unconfigured
// notifier (missing token or chat id) is a no-op, not an error.
type Notifier struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

func New(token, chatID string) *Notifier {
	return &Notifier{
		token:      token,
		chatID:     chatID,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (n *Notifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

// Send posts text to the configured chat as MarkdownV2, escaping the special
// characters the dialect requires.
func (n *Notifier) Send(text string) error {
	if !n.Enabled() {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"chat_id":                  n.chatID,
		"text":                     EscapeMarkdownV2(text),
		"parse_mode":               "MarkdownV2",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("encoding telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	resp, err := n.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram send: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// EscapeMarkdownV2 escapes every character Telegram's MarkdownV2 dialect
// treats as markup.
func EscapeMarkdownV2(text string) string {
	const chars = "\\_*[]()~`>#+-=|{}.!"
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(chars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
