package notify

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pwncrew/ctfherald"
)

func TestFormatDuration(t *testing.T) {
	durationTests := []struct {
		d    time.Duration
		want string
	}{
		{0, ""},
		{45 * time.Second, "45 seconds"},
		{90 * time.Second, "1 minutes 30 seconds"},
		{2*time.Hour + 30*time.Minute, "2 hours 30 minutes"},
		{30 * time.Hour, "30 hours"},
		// Day granularity starts strictly above 48 hours, so a two-day
		// event still reads in hours.
		{48 * time.Hour, "48 hours"},
		{49 * time.Hour, "2 days 1 hours"},
		{72 * time.Hour, "3 days"},
		{49*time.Hour + 30*time.Minute, "2 days 1 hours 30 minutes"},
		{7*24*time.Hour + 5*time.Second, "7 days 5 seconds"},
	}

	for _, tt := range durationTests {
		t.Run(fmt.Sprintf("%v", tt.d), func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func testEvent() *ctfherald.Event {
	return &ctfherald.Event{
		Title:         "FAUST CTF 2017",
		OriginURL:     "https://ctftime.org/event/437/",
		DetailURL:     "https://faustctf.net/",
		Start:         time.Date(2017, 5, 27, 12, 0, 0, 0, time.UTC),
		Finish:        time.Date(2017, 5, 27, 21, 0, 0, 0, time.UTC),
		LogoURL:       "https://ctftime.org/media/events/faust.png",
		Format:        ctfherald.FormatAttackDefense,
		PublicVotable: true,
		Weight:        25.0,
		Restrictions:  ctfherald.RestrictionsOpen,
		Organizers: []ctfherald.Team{
			{ID: 551, Name: "FAUST"},
			{ID: 1005, Name: "hxp"},
		},
		ID:    437,
		CTFID: 54,
	}
}

func TestAttachment(t *testing.T) {
	config := testConfig()
	event := testEvent()

	attachment := Attachment(config, event)

	if got, want := attachment.Title, "FAUST CTF 2017 — Attack-Defense"; got != want {
		t.Errorf("title: got %q, want %q", got, want)
	}
	if got, want := attachment.Color, config.ColorAttackDefense; got != want {
		t.Errorf("color: got %q, want %q", got, want)
	}
	if got, want := attachment.ThumbURL, event.LogoURL; got != want {
		t.Errorf("thumb URL: got %q, want %q", got, want)
	}

	// The date lines render in the viewer's local time zone.
	wantText := "**Date:** " + event.Start.Local().Format(bodyTimeLayout) + " for 9 hours\n" +
		"**Organizers:** [FAUST](https://ctftime.org/team/551), [hxp](https://ctftime.org/team/1005)\n" +
		"[https://faustctf.net/](https://faustctf.net/)"
	if attachment.Text != wantText {
		t.Errorf("text:\ngot  %q\nwant %q", attachment.Text, wantText)
	}

	wantFallback := "FAUST CTF 2017 — Attack-Defense\n" +
		"Date: " + event.Start.Local().Format(fallbackTimeLayout) + " for 9 hours\n" +
		"https://faustctf.net/"
	if attachment.Fallback != wantFallback {
		t.Errorf("fallback:\ngot  %q\nwant %q", attachment.Fallback, wantFallback)
	}
}

func TestAttachmentJeopardyColor(t *testing.T) {
	config := testConfig()

	for _, format := range []ctfherald.Format{
		ctfherald.FormatJeopardy,
		ctfherald.FormatHackQuest,
		ctfherald.FormatUnknown,
	} {
		event := testEvent()
		event.Format = format

		if got := Attachment(config, event).Color; got != config.ColorJeopardy {
			t.Errorf("%v color: got %q, want the jeopardy color", format, got)
		}
	}
}

func TestAttachmentLocation(t *testing.T) {
	config := testConfig()

	event := testEvent()
	event.OnSite = true
	event.Location = "Grenoble, France"

	attachment := Attachment(config, event)
	if want := "**Location:** Grenoble, France"; !strings.Contains(attachment.Text, want) {
		t.Errorf("text should contain %q:\n%s", want, attachment.Text)
	}

	// The location only shows for onsite events.
	event.OnSite = false
	attachment = Attachment(config, event)
	if strings.Contains(attachment.Text, "**Location:** Grenoble, France") {
		t.Errorf("text should not mention the location:\n%s", attachment.Text)
	}

	// And only when it is actually set.
	event.OnSite = true
	event.Location = ""
	attachment = Attachment(config, event)
	if strings.Contains(attachment.Text, "**Location:**") {
		t.Errorf("text should not mention the location:\n%s", attachment.Text)
	}
}

func TestAttachmentPrequalifiedNote(t *testing.T) {
	config := testConfig()

	event := testEvent()
	event.Restrictions = ctfherald.RestrictionsPrequalified

	attachment := Attachment(config, event)
	if !strings.Contains(attachment.Text, "Prequalified teams only") {
		t.Errorf("text should carry the prequalified note:\n%s", attachment.Text)
	}

	event.Restrictions = ctfherald.RestrictionsOpen
	attachment = Attachment(config, event)
	if strings.Contains(attachment.Text, "Prequalified teams only") {
		t.Errorf("text should not carry the prequalified note:\n%s", attachment.Text)
	}
}

func TestAttachmentDeterministic(t *testing.T) {
	config := testConfig()
	event := testEvent()

	first := Attachment(config, event)
	second := Attachment(config, event)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated synthesis differs:\n%+v\n%+v", first, second)
	}
}

func TestPayload(t *testing.T) {
	now := time.Date(2017, 5, 20, 12, 0, 0, 0, time.UTC)
	config := testConfig()
	config.Channel = "ctf-announcements"
	config.BotIcon = "https://chat.example.com/icon.png"

	online := testEvent()
	online.OnSite = false

	onsite := testEvent()
	onsite.Title = "GreHack CTF 2017"
	onsite.OnSite = true

	invited := testEvent()
	invited.Title = "DEF CON CTF Finals"
	invited.Restrictions = ctfherald.RestrictionsInvited

	msg := Payload(config, []*ctfherald.Event{online, onsite, invited}, now)
	if msg == nil {
		t.Fatal("expected a message")
	}

	if got, want := msg.Username, "Upcoming CTFs"; got != want {
		t.Errorf("username: got %q, want %q", got, want)
	}
	if got, want := msg.Text, "[Upcoming CTFs](https://ctftime.org/event/oldlist/upcoming)"; got != want {
		t.Errorf("text: got %q, want %q", got, want)
	}
	if got, want := msg.Channel, "ctf-announcements"; got != want {
		t.Errorf("channel: got %q, want %q", got, want)
	}
	if got, want := msg.IconURL, "https://chat.example.com/icon.png"; got != want {
		t.Errorf("icon URL: got %q, want %q", got, want)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(msg.Attachments))
	}
	if got, want := msg.Attachments[0].Title, "FAUST CTF 2017 — Attack-Defense"; got != want {
		t.Errorf("attachment title: got %q, want %q", got, want)
	}
}

func TestPayloadNoSurvivors(t *testing.T) {
	now := time.Date(2017, 5, 20, 12, 0, 0, 0, time.UTC)
	config := testConfig()

	onsite := testEvent()
	onsite.OnSite = true

	// No qualifying event means no message at all, not an empty one.
	if msg := Payload(config, []*ctfherald.Event{onsite}, now); msg != nil {
		t.Errorf("expected nil message, got %+v", msg)
	}
	if msg := Payload(config, nil, now); msg != nil {
		t.Errorf("expected nil message for no events, got %+v", msg)
	}
}

func TestPayloadPreservesOrder(t *testing.T) {
	now := time.Date(2017, 5, 20, 12, 0, 0, 0, time.UTC)
	config := testConfig()

	first := testEvent()
	second := testEvent()
	second.Title = "hxp CTF 2017"
	second.Format = ctfherald.FormatJeopardy

	msg := Payload(config, []*ctfherald.Event{first, second}, now)
	if msg == nil || len(msg.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %+v", msg)
	}
	if msg.Attachments[0].Title != "FAUST CTF 2017 — Attack-Defense" ||
		msg.Attachments[1].Title != "hxp CTF 2017 — Jeopardy" {
		t.Errorf("attachment order: got %q, %q", msg.Attachments[0].Title, msg.Attachments[1].Title)
	}
}

