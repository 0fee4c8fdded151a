package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// fallbackLayouts are tried after the profile's declared format, in
// order. Keep US month-first layouts ahead of day-first ones; ambiguous
// rows should have matched the profile layout already.
var fallbackLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02/01/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDate resolves a raw CSV date cell to a local calendar day. The
// profile layout is tried first, then the fallback list, then a
// generic parse as a last resort.
func parseDate(raw, profileLayout string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if profileLayout != "" {
		if t, err := time.ParseInLocation(profileLayout, s, time.Local); err == nil {
			return midnight(t), nil
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return midnight(t), nil
		}
	}
	if t, err := dateparse.ParseLocal(s); err == nil {
		return midnight(t), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// midnight truncates a parsed timestamp to the local calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
