package notify

import "github.com/abdul-hamid-achik/bddrun/packages/core/config"

// FromSettings builds a manager for the configured webhooks. A manager
// with no notifiers is returned when none are set.
func FromSettings(s config.NotifySettings) (*Manager, error) {
	on := NotifyFailure
	if s.On != "" {
		parsed, err := ParseNotifyOn(s.On)
		if err != nil {
			return nil, err
		}
		on = parsed
	}

	m := NewManager(on)
	if s.Slack.Webhook != "" {
		var opts []SlackOption
		if s.Slack.Channel != "" {
			opts = append(opts, WithSlackChannel(s.Slack.Channel))
		}
		m.AddNotifier(NewSlackNotifier(s.Slack.Webhook, opts...))
	}
	if s.Teams.Webhook != "" {
		m.AddNotifier(NewTeamsNotifier(s.Teams.Webhook))
	}
	return m, nil
}
