package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pwncrew/ctfherald"
	"github.com/pwncrew/ctfherald/mattermost"
)

const (
	botUsername = "Upcoming CTFs"
	introText   = "[Upcoming CTFs](" + ctfherald.BaseURL + "/event/oldlist/upcoming)"
)

const (
	bodyTimeLayout     = "Monday, 2006-01-02 15:04"
	fallbackTimeLayout = "2006-01-02 15:04:05"
)

// Payload assembles the webhook message for one run: every event that passes
// the filter becomes one attachment, in input order. When nothing passes,
// Payload returns nil and no message must be sent at all, which is not the
// same thing as a message with zero attachments.
func Payload(cfg ctfherald.Config, events []*ctfherald.Event, now time.Time) *mattermost.Message {
	attachments := make([]mattermost.Attachment, 0, len(events))
	for _, event := range events {
		if ShouldNotify(cfg, event, now) {
			attachments = append(attachments, Attachment(cfg, event))
		}
	}

	if len(attachments) == 0 {
		return nil
	}

	return &mattermost.Message{
		Username:    botUsername,
		Text:        introText,
		Channel:     cfg.Channel,
		IconURL:     cfg.BotIcon,
		Attachments: attachments,
	}
}

// Attachment renders one event as a webhook attachment. The result depends
// only on the event and the configuration.
func Attachment(cfg ctfherald.Config, event *ctfherald.Event) mattermost.Attachment {
	duration := FormatDuration(event.Duration())
	title := fmt.Sprintf("%s — %s", event.Title, event.Format)
	link := event.Link()

	organizers := make([]string, 0, len(event.Organizers))
	for _, team := range event.Organizers {
		organizers = append(organizers, team.Markdown())
	}

	var text strings.Builder
	fmt.Fprintf(&text, "**Date:** %s for %s\n", event.Start.Local().Format(bodyTimeLayout), duration)
	fmt.Fprintf(&text, "**Organizers:** %s\n", strings.Join(organizers, ", "))
	fmt.Fprintf(&text, "[%s](%s)\n\n", link, link)

	if event.OnSite && event.Location != "" {
		fmt.Fprintf(&text, "**Location:** %s\n", event.Location)
	}
	if event.Restrictions == ctfherald.RestrictionsPrequalified {
		text.WriteString("Prequalified teams only\n")
	}

	fallback := fmt.Sprintf("%s\nDate: %s for %s\n%s",
		title, event.Start.Local().Format(fallbackTimeLayout), duration, link)

	color := cfg.ColorJeopardy
	if event.Format == ctfherald.FormatAttackDefense {
		color = cfg.ColorAttackDefense
	}

	return mattermost.Attachment{
		Fallback: fallback,
		Title:    title,
		Text:     strings.TrimSpace(text.String()),
		Color:    color,
		ThumbURL: event.LogoURL,
	}
}

// FormatDuration renders a duration in its largest applicable units, e.g.
// "2 days 6 hours" or "1 hours 30 minutes". Days only kick in above 48
// hours so that a 30-hour event is not reported as running for "1 days".
// A zero duration renders as the empty string.
func FormatDuration(d time.Duration) string {
	parts := make([]string, 0, 4)

	if d/time.Hour > 48 {
		days := d / (24 * time.Hour)
		parts = append(parts, fmt.Sprintf("%d days", days))
		d -= days * 24 * time.Hour
	}
	if hours := d / time.Hour; hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
		d -= hours * time.Hour
	}
	if minutes := d / time.Minute; minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
		d -= minutes * time.Minute
	}
	if seconds := d / time.Second; seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d seconds", seconds))
	}

	return strings.Join(parts, " ")
}
