package ctfherald

import "slices"

// Configuration defaults. The two colors are the ones CTFtime itself uses
// for the event categories.
const (
	DefaultLookaheadDays      = 21
	DefaultColorJeopardy      = "#0099e1"
	DefaultColorAttackDefense = "#da5422"
)

// Config is the run configuration of the notifier. It is built once at
// process start, validated, and passed read-only into the filter and the
// message synthesizer.
type Config struct {
	// Mattermost incoming-webhook endpoint.
	WebhookURL string `toml:"webhook_url"`

	// Overrides the channel the webhook posts to. Optional.
	Channel string `toml:"channel"`

	// Profile picture override for the posting bot. Optional.
	BotIcon string `toml:"bot_icon"`

	// How many days ahead of now an online event is still worth posting.
	LookaheadDays int `toml:"lookahead_days"`

	// Attachment border colors, by event format.
	ColorJeopardy      string `toml:"color_jeopardy"`
	ColorAttackDefense string `toml:"color_attack_defense"`

	// Series IDs that are always posted, no matter what the filter says.
	AlwaysShowCTFs []int `toml:"always_show_ctfs"`
}

// DefaultConfig returns a new instance of Config with defaults set.
func DefaultConfig() Config {
	return Config{
		LookaheadDays:      DefaultLookaheadDays,
		ColorJeopardy:      DefaultColorJeopardy,
		ColorAttackDefense: DefaultColorAttackDefense,
	}
}

// Validate performs basic field validation.
func (c Config) Validate() error {
	if c.WebhookURL == "" {
		return Errorf(EINVALID, "Webhook URL required.")
	}

	if c.LookaheadDays < 0 {
		return Errorf(EINVALID, "Lookahead days cannot be negative.")
	}

	return nil
}

// AlwaysShow reports whether the given series is exempt from filtering.
func (c Config) AlwaysShow(ctfID int) bool {
	return slices.Contains(c.AlwaysShowCTFs, ctfID)
}
