// SPDX-License-Identifier: MPL-2.0

package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultFormat is what date prints without any format flag.
const DefaultFormat = "%a %b %e %H:%M:%S %Z %Y"

// UTCFormat is the fixed format selected by date -u.
const UTCFormat = "%a %b %d %H:%M:%S UTC %Y"

// Format date layouts selected by the ISO-8601 and RFC-3339 flags.
var (
	isoFormats = map[string]string{
		"date":    "%Y-%m-%d",
		"hours":   "%Y-%m-%dT%H%:z",
		"minutes": "%Y-%m-%dT%H:%M%:z",
		"seconds": "%Y-%m-%dT%H:%M:%S%:z",
		"ns":      "%Y-%m-%dT%H:%M:%S,%N%:z",
	}
	rfc3339Formats = map[string]string{
		"date":    "%Y-%m-%d",
		"seconds": "%Y-%m-%d %H:%M:%S%:z",
		"ns":      "%Y-%m-%d %H:%M:%S.%N%:z",
	}
	rewrites = strings.NewReplacer(
		"%%", "%%",
		"%D", "%m/%d/%y",
		"%n", "\n",
		"%N", "%f",
		"%R", "%H:%M",
		"%t", "\t",
		"%T", "%H:%M:%S",
	)
)

// ISOFormats and RFC3339Formats list the accepted precision words.
var (
	ISOFormats     = []string{"date", "hours", "minutes", "seconds", "ns"}
	RFC3339Formats = []string{"date", "seconds", "ns"}
)

// FormatOptions are the display-format flags of date. Empty strings mean unset.
type FormatOptions struct {
	ISO      string
	RFCEmail bool
	RFC3339  string
	UTC      bool
	Freeform string
}

// ResolveFormat picks the display format. The first set option wins in the
// order ISO-8601, RFC-email, RFC-3339, UTC, freeform; the default format is
// used when none is set. The literal-directive rewrites are applied last.
func ResolveFormat(o FormatOptions) (string, error) {
	var format string
	switch {
	case o.ISO != "":
		f, ok := isoFormats[o.ISO]
		if !ok {
			return "", fmt.Errorf("invalid argument '%s' for '--iso-8601'", o.ISO)
		}
		format = f
	case o.RFCEmail:
		format = "%a, %d %b %Y %H:%M:%S %z"
	case o.RFC3339 != "":
		f, ok := rfc3339Formats[o.RFC3339]
		if !ok {
			return "", fmt.Errorf("invalid argument '%s' for '--rfc-3339'", o.RFC3339)
		}
		format = f
	case o.UTC:
		format = UTCFormat
	case o.Freeform != "":
		format = o.Freeform
	default:
		format = DefaultFormat
	}
	return Rewrite(format), nil
}

// Rewrite expands the literal directives %D %n %N %R %t %T into their
// equivalents. An escaped "%%" is left alone.
func Rewrite(format string) string {
	return rewrites.Replace(format)
}

// HasEpoch reports whether format contains the %s directive.
func HasEpoch(format string) bool {
	for i := 0; i < len(format)-1; i++ {
		if format[i] != '%' {
			continue
		}
		if format[i+1] == 's' {
			return true
		}
		i++
	}
	return false
}

// Format renders t according to a strftime-style layout.
// Unknown directives are copied through unchanged.
func Format(layout string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i == len(layout)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		if layout[i] == ':' && i+1 < len(layout) && layout[i+1] == 'z' {
			i++
			b.WriteString(t.Format("-07:00"))
			continue
		}
		b.WriteString(directive(layout[i], t))
	}
	return b.String()
}

func directive(c byte, t time.Time) string {
	switch c {
	case 'a':
		return t.Format("Mon")
	case 'A':
		return t.Format("Monday")
	case 'b', 'h':
		return t.Format("Jan")
	case 'B':
		return t.Format("January")
	case 'c':
		return Format("%a %b %e %H:%M:%S %Y", t)
	case 'C':
		return fmt.Sprintf("%02d", t.Year()/100)
	case 'd':
		return fmt.Sprintf("%02d", t.Day())
	case 'D':
		return Format("%m/%d/%y", t)
	case 'e':
		return fmt.Sprintf("%2d", t.Day())
	case 'f':
		return fmt.Sprintf("%06d", t.Nanosecond()/1000)
	case 'F':
		return Format("%Y-%m-%d", t)
	case 'G':
		year, _ := t.ISOWeek()
		return strconv.Itoa(year)
	case 'H':
		return fmt.Sprintf("%02d", t.Hour())
	case 'I':
		return fmt.Sprintf("%02d", hour12(t))
	case 'j':
		return fmt.Sprintf("%03d", t.YearDay())
	case 'k':
		return fmt.Sprintf("%2d", t.Hour())
	case 'l':
		return fmt.Sprintf("%2d", hour12(t))
	case 'm':
		return fmt.Sprintf("%02d", int(t.Month()))
	case 'M':
		return fmt.Sprintf("%02d", t.Minute())
	case 'n':
		return "\n"
	case 'N':
		return fmt.Sprintf("%09d", t.Nanosecond())
	case 'p':
		return t.Format("PM")
	case 'P':
		return t.Format("pm")
	case 'r':
		return Format("%I:%M:%S %p", t)
	case 'R':
		return Format("%H:%M", t)
	case 's':
		return strconv.FormatInt(t.Unix(), 10)
	case 'S':
		return fmt.Sprintf("%02d", t.Second())
	case 't':
		return "\t"
	case 'T':
		return Format("%H:%M:%S", t)
	case 'u':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd)
	case 'V':
		_, week := t.ISOWeek()
		return fmt.Sprintf("%02d", week)
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'x':
		return Format("%m/%d/%y", t)
	case 'X':
		return Format("%H:%M:%S", t)
	case 'y':
		return fmt.Sprintf("%02d", t.Year()%100)
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'z':
		return t.Format("-0700")
	case 'Z':
		return t.Format("MST")
	case '%':
		return "%"
	default:
		return "%" + string(c)
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}
