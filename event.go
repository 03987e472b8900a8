package ctfherald

import (
	"strconv"
	"time"
)

// BaseURL is the CTFtime origin every relative upstream reference (logos,
// team profiles) is resolved against.
const BaseURL = "https://ctftime.org"

// Format is the play style of a CTF, most common Jeopardy or AttackDefense.
type Format int

const (
	FormatUnknown Format = iota
	FormatJeopardy
	FormatAttackDefense
	FormatHackQuest
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatJeopardy:
		return "Jeopardy"
	case FormatAttackDefense:
		return "Attack-Defense"
	case FormatHackQuest:
		return "Hack-Quest"
	default:
		return "Unknown"
	}
}

// FormatFromID maps the numeric format code used by the RSS feed. Codes
// outside the known set degrade to FormatUnknown, they are not an error.
func FormatFromID(id int) Format {
	switch id {
	case 1:
		return FormatJeopardy
	case 2:
		return FormatAttackDefense
	case 3:
		return FormatHackQuest
	default:
		return FormatUnknown
	}
}

// ParseFormat maps the string literals used by the JSON API. Unlike the
// numeric feed codes, an unrecognized literal here is a hard error.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "Jeopardy":
		return FormatJeopardy, nil
	case "Attack-Defense":
		return FormatAttackDefense, nil
	case "Hack quest":
		return FormatHackQuest, nil
	case "":
		return FormatUnknown, nil
	}
	return FormatUnknown, Errorf(EINVALID, "Unknown format: %s.", s)
}

// Restrictions describes who is allowed to participate in an event.
type Restrictions int

const (
	RestrictionsOpen Restrictions = iota
	RestrictionsPrequalified
	RestrictionsAcademic
	RestrictionsInvited
	RestrictionsHighSchool
)

func (r Restrictions) String() string {
	switch r {
	case RestrictionsOpen:
		return "Open"
	case RestrictionsPrequalified:
		return "Prequalified"
	case RestrictionsAcademic:
		return "Academic"
	case RestrictionsInvited:
		return "Invited"
	case RestrictionsHighSchool:
		return "High-school"
	}
	return "Unknown"
}

// ParseRestrictions maps the restriction literals used by both upstream
// representations. Unrecognized literals are a hard error in both.
func ParseRestrictions(s string) (Restrictions, error) {
	switch s {
	case "Open":
		return RestrictionsOpen, nil
	case "Prequalified":
		return RestrictionsPrequalified, nil
	case "Academic":
		return RestrictionsAcademic, nil
	case "Invited":
		return RestrictionsInvited, nil
	case "High-school":
		return RestrictionsHighSchool, nil
	}
	return RestrictionsOpen, Errorf(EINVALID, "Unknown restrictions: %s.", s)
}

// Team represents an organizer team within CTFtime.
type Team struct {
	ID   int
	Name string
}

// Markdown renders the team as a markdown link to its CTFtime profile.
func (t Team) Markdown() string {
	return "[" + t.Name + "](" + BaseURL + "/team/" + strconv.Itoa(t.ID) + ")"
}

// Event is one scheduled instance of a CTF, e.g. "FAUST CTF 2017".
//
// Optional string fields hold "" when the upstream did not provide a value.
// An Event is built once by a decoder and never mutated afterwards.
type Event struct {
	// Display title, specific to this instance.
	Title string

	// Link to the CTFtime page of the event. Always present, doubles as
	// the feed guid.
	OriginURL string

	// Link to the event's own page. Optional, OriginURL is the fallback.
	DetailURL string

	// Scheduled start and finish, with explicit UTC offset.
	Start  time.Time
	Finish time.Time

	// Absolute URL of the event logo. Optional.
	LogoURL string

	Format        Format
	PublicVotable bool
	Weight        float64

	// Link to the live feed of the event. Optional.
	LiveFeedURL string

	Restrictions Restrictions

	// Location of an onsite CTF. Only meaningful when OnSite is set.
	Location string
	OnSite   bool

	// Organizer teams, in authoring order.
	Organizers []Team

	// ID of this instance. Only the JSON API carries it.
	ID int

	// ID and name of the recurring series this instance belongs to,
	// e.g. "FAUST CTF". Stable across years.
	CTFID   int
	CTFName string

	// Enrolled participant count. Only the JSON API carries it.
	Participants int
}

// Link returns the best page to send people to.
func (e *Event) Link() string {
	if e.DetailURL != "" {
		return e.DetailURL
	}
	return e.OriginURL
}

// Duration returns how long the event runs for.
func (e *Event) Duration() time.Duration {
	return e.Finish.Sub(e.Start)
}

// Validate performs basic field validation on a freshly decoded event.
func (e *Event) Validate() error {
	if e.Title == "" {
		return Errorf(EINVALID, "Title required.")
	}

	if e.OriginURL == "" {
		return Errorf(EINVALID, "CTFtime URL required.")
	}

	if e.Start.IsZero() || e.Finish.IsZero() {
		return Errorf(EINVALID, "Start and finish required.")
	}

	return nil
}
