// SPDX-License-Identifier: MPL-2.0

package datetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrStampFormat is returned for touch -t stamps outside the grammar.
var ErrStampFormat = errors.New("invalid date format")

// ParseStamp reads a touch -t stamp, [[CC]YY]MMDDhhmm[.ss], in loc.
// A 12-digit main part is CCYYMMDDhhmm and a 10-digit one YYMMDDhhmm.
func ParseStamp(stamp string, loc *time.Location) (time.Time, error) {
	main, secs, hasSecs := strings.Cut(stamp, ".")

	var layout string
	switch len(main) {
	case 12:
		layout = "200601021504"
	case 10:
		layout = "0601021504"
	default:
		return time.Time{}, fmt.Errorf("%w '%s'", ErrStampFormat, stamp)
	}
	if !digits(main) || (hasSecs && (len(secs) != 2 || !digits(secs))) {
		return time.Time{}, fmt.Errorf("%w '%s'", ErrStampFormat, stamp)
	}

	t, err := time.ParseInLocation(layout, main, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w '%s'", ErrStampFormat, stamp)
	}
	if hasSecs {
		s, _ := strconv.Atoi(secs)
		if s > 60 {
			return time.Time{}, fmt.Errorf("%w '%s'", ErrStampFormat, stamp)
		}
		t = t.Add(time.Duration(s) * time.Second)
	}
	return t, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
