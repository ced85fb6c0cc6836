package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/report"
)

// SlackNotifier sends notifications to Slack via webhook
type SlackNotifier struct {
	webhookURL string
	channel    string
	username   string
	iconEmoji  string
	client     *http.Client
}

// SlackOption is a functional option for SlackNotifier
type SlackOption func(*SlackNotifier)

// WithSlackChannel sets the Slack channel
func WithSlackChannel(channel string) SlackOption {
	return func(s *SlackNotifier) {
		s.channel = channel
	}
}

// WithSlackUsername sets the Slack bot username
func WithSlackUsername(username string) SlackOption {
	return func(s *SlackNotifier) {
		s.username = username
	}
}

// WithSlackClient replaces the HTTP client
func WithSlackClient(client *http.Client) SlackOption {
	return func(s *SlackNotifier) {
		s.client = client
	}
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(webhookURL string, opts ...SlackOption) *SlackNotifier {
	s := &SlackNotifier{
		webhookURL: webhookURL,
		username:   "bddrun",
		iconEmoji:  ":performing_arts:",
		client:     &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the name of the notifier
func (s *SlackNotifier) Name() string {
	return "slack"
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
	TS     int64        `json:"ts,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Notify sends a notification to Slack
func (s *SlackNotifier) Notify(ctx context.Context, summary *report.Summary) error {
	color := "good"
	emoji := ":white_check_mark:"

	if !summary.Passed() {
		color = "danger"
		emoji = ":x:"
	} else if summary.IsRecovery {
		emoji = ":tada:"
	}

	fields := []slackField{
		{Title: "Browser", Value: configLine(summary), Short: false},
		{Title: "Exit status", Value: strconv.Itoa(summary.ExitCode), Short: true},
		{Title: "Duration", Value: summary.Duration.Round(time.Millisecond).String(), Short: true},
	}

	if st := summary.Stats; st != nil {
		fields = append(fields,
			slackField{Title: "Passed", Value: strconv.Itoa(st.Passed), Short: true},
			slackField{Title: "Failed", Value: strconv.Itoa(st.Failed + st.Broken), Short: true},
		)
	}

	var text strings.Builder
	if summary.Stats != nil && len(summary.Stats.Failures) > 0 {
		text.WriteString("*Failed scenarios:*\n")
		for _, f := range summary.Stats.Failures {
			fmt.Fprintf(&text, "• `%s`", f.Name)
			if f.Message != "" {
				fmt.Fprintf(&text, " - %s", f.Message)
			}
			text.WriteString("\n")
		}
	}

	msg := slackMessage{
		Channel:   s.channel,
		Username:  s.username,
		IconEmoji: s.iconEmoji,
		Attachments: []slackAttachment{{
			Color:  color,
			Title:  fmt.Sprintf("%s %s", emoji, headline(summary)),
			Text:   text.String(),
			Fields: fields,
			Footer: "bddrun " + summary.RunID,
			TS:     summary.StartedAt.Unix(),
		}},
	}

	return s.send(ctx, msg)
}

func (s *SlackNotifier) send(ctx context.Context, msg slackMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
