// SPDX-License-Identifier: MPL-2.0

package datetime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrUnparsable is returned when a date string matches no known form.
var ErrUnparsable = errors.New("can't parse date")

type (
	// Parser turns human-written date strings into instants.
	//
	// Recognized forms, tried in order: the words now, today, yesterday and
	// tomorrow; "@SECONDS" and bare epoch seconds; relative phrases such as
	// "3 days ago", "in 2 hours", "+1 week", "next month"; and finally absolute
	// dates in any layout dateparse understands, read in Location.
	Parser struct {
		Now      func() time.Time
		Location *time.Location
	}

	unit struct {
		d      time.Duration
		days   int
		months int
	}
)

var units = map[string]unit{
	"second":    {d: time.Second},
	"sec":       {d: time.Second},
	"minute":    {d: time.Minute},
	"min":       {d: time.Minute},
	"hour":      {d: time.Hour},
	"day":       {days: 1},
	"week":      {days: 7},
	"fortnight": {days: 14},
	"month":     {months: 1},
	"year":      {months: 12},
}

// NewParser returns a Parser using the wall clock in loc.
func NewParser(loc *time.Location) *Parser {
	return &Parser{Now: time.Now, Location: loc}
}

// Parse interprets s. Failures wrap ErrUnparsable.
func (p *Parser) Parse(s string) (time.Time, error) {
	loc := p.loc()
	now := p.now().In(loc)
	text := strings.ToLower(strings.Join(strings.Fields(s), " "))

	switch text {
	case "now", "":
		return now, nil
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), nil
	}
	if t, ok := parseEpoch(text, loc); ok {
		return t, nil
	}
	if t, ok := parseRelative(text, now); ok {
		return t, nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w '%s'", ErrUnparsable, s)
	}
	return t, nil
}

func (p *Parser) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseEpoch accepts "@N" and bare numbers. Digit strings of 8, 12 or 14
// characters are left for the calendar layouts (YYYYMMDD[hhmm[ss]]).
func parseEpoch(text string, loc *time.Location) (time.Time, bool) {
	raw, explicit := strings.CutPrefix(text, "@")
	if !explicit {
		switch len(raw) {
		case 8, 12, 14:
			return time.Time{}, false
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).In(loc), true
}

// parseRelative handles "N unit ago", "in N unit", "+N unit", "-N unit",
// "N unit" and "next|last unit".
func parseRelative(text string, now time.Time) (time.Time, bool) {
	fields := strings.Fields(text)
	sign := 1
	switch {
	case len(fields) == 2 && (fields[0] == "next" || fields[0] == "last"):
		if fields[0] == "last" {
			sign = -1
		}
		u, ok := lookupUnit(fields[1])
		if !ok {
			return time.Time{}, false
		}
		return shift(now, u, sign), true
	case len(fields) == 3 && fields[0] == "in":
		fields = fields[1:]
	case len(fields) == 3 && fields[2] == "ago":
		fields = fields[:2]
		sign = -1
	}
	if len(fields) != 2 {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}
	u, ok := lookupUnit(fields[1])
	if !ok {
		return time.Time{}, false
	}
	return shift(now, u, sign*n), true
}

func lookupUnit(word string) (unit, bool) {
	if u, ok := units[word]; ok {
		return u, true
	}
	u, ok := units[strings.TrimSuffix(word, "s")]
	return u, ok
}

func shift(t time.Time, u unit, n int) time.Time {
	if u.months != 0 || u.days != 0 {
		return t.AddDate(0, u.months*n, u.days*n)
	}
	return t.Add(time.Duration(n) * u.d)
}
