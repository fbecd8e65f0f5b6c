// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"strings"
	"testing"
)

func TestHelp_Listing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.mustRun(t, "help")
	got := env.output()
	for _, want := range []string{
		"# Commands",
		"| ls | dir | List the entries of DIR (the current directory by default). |",
		"| cp |  | Copy SOURCE to DEST, or multiple SOURCE(s) to DIRECTORY. |",
		"| clear | cls | Clear the screen. |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("help output lacks %q:\n%s", want, got)
		}
	}
}

func TestHelp_Rendered(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.HelpStyle = "notty"

	env.mustRun(t, "help")
	got := env.output()
	if !strings.Contains(got, "Commands") || !strings.Contains(got, "history") {
		t.Errorf("rendered help = %q", got)
	}
	if strings.Contains(got, "|---|") {
		t.Error("rendered help still contains the raw table separator")
	}
}

func TestHelp_Command(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.mustRun(t, "help dir")
	if got, want := env.output(), HelpText(newLsCommand())+"\n"; got != want {
		t.Errorf("help dir = %q, want %q", got, want)
	}
	if err := env.run(t, "help frobnicate"); err == nil || err.Error() != "no help topics match 'frobnicate'" {
		t.Errorf("help frobnicate error = %v", err)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.Println("noise")

	env.mustRun(t, "cls")
	if got := env.out.Clears(); got != 1 {
		t.Errorf("Clears() = %d, want 1", got)
	}
	if got := env.out.Output(); got != "" {
		t.Errorf("output after clear = %q, want empty", got)
	}
	if err := env.run(t, "clear now"); err == nil {
		t.Error("clear now succeeded, want usage error")
	}
}
