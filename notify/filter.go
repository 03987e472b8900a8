// Package notify decides which events are worth posting and turns them into
// a webhook message.
package notify

import (
	"time"

	"github.com/pwncrew/ctfherald"
)

// ShouldNotify reports whether an event should be surfaced to users.
//
// Series on the always-show list are surfaced unconditionally. Everything
// else must be open to participation (Open or Academic), playable online and
// start within the configured lookahead window. Events that already started
// still pass: there is no lower bound on the window.
func ShouldNotify(cfg ctfherald.Config, event *ctfherald.Event, now time.Time) bool {
	if cfg.AlwaysShow(event.CTFID) {
		return true
	}

	if event.Restrictions != ctfherald.RestrictionsOpen && event.Restrictions != ctfherald.RestrictionsAcademic {
		return false
	}

	// Whole days until the start, truncated toward zero. An event starting
	// in 21 days and 23 hours is still 21 days out.
	daysUntilStart := int(event.Start.Sub(now) / (24 * time.Hour))

	return !event.OnSite && daysUntilStart <= cfg.LookaheadDays
}
