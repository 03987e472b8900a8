package ctftime

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/pwncrew/ctfherald"
)

// Event is the wire shape of one record of the CTFtime v1 events API.
// Several upstream names differ from the canonical model: "start"/"finish"
// are the schedule, "logo" the logo URL and "id" the per-instance ID,
// distinct from the series "ctf_id".
type Event struct {
	Organizers    []Team    `json:"organizers"`
	OnSite        bool      `json:"onsite"`
	Finish        time.Time `json:"finish"`
	Weight        float64   `json:"weight"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Restrictions  string    `json:"restrictions"`
	Format        string    `json:"format"`
	Start         time.Time `json:"start"`
	Participants  int       `json:"participants"`
	CTFTimeURL    string    `json:"ctftime_url"`
	Location      string    `json:"location"`
	LiveFeed      string    `json:"live_feed"`
	PublicVotable bool      `json:"public_votable"`
	Logo          string    `json:"logo"`
	ID            int       `json:"id"`
	CTFID         int       `json:"ctf_id"`
}

// Team is the wire shape of an organizer team. Only ID and name make it
// into the canonical model.
type Team struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Academic bool     `json:"academic"`
	Aliases  []string `json:"aliases"`
}

// Canonical converts the wire record into a canonical event. The API uses
// string literals for both enums and neither tolerates an unknown literal.
func (e *Event) Canonical() (*ctfherald.Event, error) {
	format, err := ctfherald.ParseFormat(e.Format)
	if err != nil {
		return nil, err
	}

	restrictions, err := ctfherald.ParseRestrictions(e.Restrictions)
	if err != nil {
		return nil, err
	}

	organizers := make([]ctfherald.Team, 0, len(e.Organizers))
	for _, team := range e.Organizers {
		organizers = append(organizers, ctfherald.Team{ID: team.ID, Name: team.Name})
	}

	event := &ctfherald.Event{
		Title:         e.Title,
		OriginURL:     e.CTFTimeURL,
		DetailURL:     e.URL,
		Start:         e.Start,
		Finish:        e.Finish,
		LogoURL:       e.Logo,
		Format:        format,
		PublicVotable: e.PublicVotable,
		Weight:        e.Weight,
		LiveFeedURL:   e.LiveFeed,
		Restrictions:  restrictions,
		Location:      e.Location,
		OnSite:        e.OnSite,
		Organizers:    organizers,
		ID:            e.ID,
		CTFID:         e.CTFID,
		Participants:  e.Participants,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// DecodeEvents decodes a JSON array of API records into canonical events.
// A record that fails conversion is logged and skipped, the rest of the
// array is still decoded. Input order is preserved.
func DecodeEvents(r io.Reader) ([]*ctfherald.Event, error) {
	records := make([]*Event, 0)
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}

	events := make([]*ctfherald.Event, 0, len(records))
	for _, record := range records {
		event, err := record.Canonical()
		if err != nil {
			slog.Warn("skipping malformed API record", "title", record.Title, "error", ctfherald.ErrorMessage(err))
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
