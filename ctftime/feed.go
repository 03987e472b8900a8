package ctftime

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pwncrew/ctfherald"
)

// Feed timestamps come without an offset and are implicitly UTC.
const feedTimeLayout = "20060102T150405Z0700"

// Fields an <item> must carry for the event to be assembled at all.
var feedRequired = []string{
	"title",
	"link",
	"guid",
	"start_date",
	"finish_date",
	"format",
	"public_votable",
	"weight",
	"restrictions",
	"onsite",
	"organizers",
	"ctf_id",
	"ctf_name",
}

// DecodeFeed decodes the CTFtime RSS feed into canonical events.
//
// The feed is walked token by token. Text content is captured only inside an
// <item> and associated with the next closing tag, so each item ends up as a
// field-name to raw-text map which is converted and validated in one pass
// when the item closes. A malformed item is logged and skipped; a broken
// token stream stops the decode and returns the events collected so far
// together with the error.
func DecodeFeed(r io.Reader) ([]*ctfherald.Event, error) {
	dec := xml.NewDecoder(r)

	events := make([]*ctfherald.Event, 0)
	inItem := false
	var fields map[string]string
	var data string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return events, nil
		} else if err != nil {
			return events, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "item" {
				inItem = true
				fields = make(map[string]string)
			}

		case xml.CharData:
			// Indentation between tags arrives as character data
			// too, it must not shadow real element text.
			if inItem && strings.TrimSpace(string(t)) != "" {
				data = string(t)
			}

		case xml.EndElement:
			if t.Name.Local == "item" {
				inItem = false
				event, err := buildFeedEvent(fields)
				if err != nil {
					slog.Warn("skipping malformed feed item", "title", fields["title"], "error", ctfherald.ErrorMessage(err))
				} else {
					events = append(events, event)
				}
			} else if inItem && data != "" {
				fields[t.Name.Local] = data
			}
			data = ""
		}
	}
}

// buildFeedEvent converts the accumulated raw fields of one feed item into a
// canonical event, failing with a named-field error on anything required
// that is absent or unparseable.
func buildFeedEvent(fields map[string]string) (*ctfherald.Event, error) {
	for _, name := range feedRequired {
		if _, ok := fields[name]; !ok {
			return nil, ctfherald.Errorf(ctfherald.EINVALID, "Missing required field %q.", name)
		}
	}

	start, err := parseFeedTime(fields["start_date"])
	if err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse start_date %q.", fields["start_date"])
	}

	finish, err := parseFeedTime(fields["finish_date"])
	if err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse finish_date %q.", fields["finish_date"])
	}

	// The feed encodes the format as a numeric code. Codes outside the
	// known set mean FormatUnknown, only a non-numeric value is an error.
	formatID, err := strconv.Atoi(fields["format"])
	if err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse format %q.", fields["format"])
	}

	restrictions, err := ctfherald.ParseRestrictions(fields["restrictions"])
	if err != nil {
		return nil, err
	}

	weight, err := strconv.ParseFloat(fields["weight"], 64)
	if err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse weight %q.", fields["weight"])
	}

	ctfID, err := strconv.Atoi(fields["ctf_id"])
	if err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse ctf_id %q.", fields["ctf_id"])
	}

	// The organizer list is a JSON array embedded in the XML.
	teams := make([]Team, 0)
	if err := json.Unmarshal([]byte(fields["organizers"]), &teams); err != nil {
		return nil, ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse organizers: %s.", err)
	}
	organizers := make([]ctfherald.Team, 0, len(teams))
	for _, team := range teams {
		organizers = append(organizers, ctfherald.Team{ID: team.ID, Name: team.Name})
	}

	event := &ctfherald.Event{
		Title:         fields["title"],
		OriginURL:     fields["link"],
		DetailURL:     fields["url"],
		Start:         start,
		Finish:        finish,
		Format:        ctfherald.FormatFromID(formatID),
		PublicVotable: parseFeedBool(fields["public_votable"]),
		Weight:        weight,
		LiveFeedURL:   fields["live_feed"],
		Restrictions:  restrictions,
		Location:      fields["location"],
		OnSite:        parseFeedBool(fields["onsite"]),
		Organizers:    organizers,
		CTFID:         ctfID,
		CTFName:       fields["ctf_name"],
	}

	// Feed logos are paths relative to the CTFtime origin.
	if logo, ok := fields["logo_url"]; ok {
		event.LogoURL = ctfherald.BaseURL + logo
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

func parseFeedTime(value string) (time.Time, error) {
	return time.Parse(feedTimeLayout, value+"+0000")
}

// parseFeedBool mirrors the feed's boolean convention: anything that is not
// a literal false is true.
func parseFeedBool(value string) bool {
	switch value {
	case "false", "False":
		return false
	default:
		return true
	}
}
