// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"testing"

	"github.com/invowk/vshell/internal/datetime"
)

func TestDate_Formats(t *testing.T) {
	t.Parallel()

	// The clock reads 2020-01-01 00:00:00 UTC, a Wednesday.
	tests := []struct {
		line string
		want string
	}{
		{"date", "Wed Jan  1 00:00:00 UTC 2020"},
		{"date +%s", "1577836800"},
		{"date +%Y-%m-%d", "2020-01-01"},
		{"date +%D", "01/01/20"},
		{"date +%T", "00:00:00"},
		{"date +%%T", "%T"},
		{"date -I", "2020-01-01"},
		{"date --iso-8601=seconds", "2020-01-01T00:00:00+00:00"},
		{"date -I=hours", "2020-01-01T00+00:00"},
		{"date -Iseconds", "2020-01-01T00:00:00+00:00"},
		{"date -Ins", "2020-01-01T00:00:00,000000+00:00"},
		{"date -R", "Wed, 01 Jan 2020 00:00:00 +0000"},
		{"date --rfc-3339=ns", "2020-01-01 00:00:00.000000+00:00"},
		{"date -u", "Wed Jan 01 00:00:00 UTC 2020"},
		{"date -u +%Y", "Wed Jan 01 00:00:00 UTC 2020"},
		{"date -I -R", "2020-01-01"},
		{"date -R --rfc-3339=date", "Wed, 01 Jan 2020 00:00:00 +0000"},
		{"date -d @0 +%Y", "1970"},
		{"date -d @86400 +%s", "86400"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			env.mustRun(t, tt.line)
			if got := env.output(); got != tt.want+"\n" {
				t.Errorf("%s = %q, want %q", tt.line, got, tt.want+"\n")
			}
		})
	}
}

func TestDate_File(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"/srv/dates.txt": "@0\n\n  \nbogus\n86400\n"})

	env.mustRun(t, "date -f dates.txt +%s")
	want := "0\ndate: can't parse date 'bogus'\n86400\n"
	if got := env.output(); got != want {
		t.Errorf("date -f = %q, want %q", got, want)
	}
}

func TestDate_Reference(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.mustRun(t, "touch -t 201506070809.10 ref")
	env.mustRun(t, "date -r ref +%F_%T")
	if got, want := env.output(), "2015-06-07_08:09:10\n"; got != want {
		t.Errorf("date -r = %q, want %q", got, want)
	}
}

func TestDate_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"/srv/f": "0\n"})

	if err := env.run(t, "date -d bogus"); !errors.Is(err, datetime.ErrUnparsable) {
		t.Errorf("date -d bogus error = %v, want ErrUnparsable", err)
	}
	var ue *UsageError
	if err := env.run(t, "date -d @0 -r f"); !errors.As(err, &ue) {
		t.Errorf("date -d -r error = %v, want *UsageError", err)
	}
	if err := env.run(t, "date -f f -d @0"); !errors.As(err, &ue) {
		t.Errorf("date -f -d error = %v, want *UsageError", err)
	}
	var pe *ParseError
	if err := env.run(t, "date tomorrow"); !errors.As(err, &pe) {
		t.Errorf("date tomorrow error = %v, want *ParseError", err)
	}
	if err := env.run(t, "date --rfc-3339=minutes"); !errors.As(err, &ue) {
		t.Errorf("date --rfc-3339=minutes error = %v, want *UsageError", err)
	}
	if err := env.run(t, "date -r missing"); err == nil {
		t.Error("date -r missing succeeded")
	}
	if got := env.output(); got != "" {
		t.Errorf("failed invocations printed %q", got)
	}
}
