package hardening

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func evaluatedChecklist(t *testing.T) Checklist {
	t.Helper()
	cl := Checklist{
		NewKconfigCheck("self_protection", "defconfig", "BUG", "y"),
		NewKconfigCheck("cut_attack_surface", "grsec", "DEVMEM", NotSet),
		NewOR(
			NewKconfigCheck("self_protection", "kspp", "RANDSTRUCT_FULL", "y"),
			NewKconfigPresence("self_protection", "kspp", "GCC_PLUGIN_RANDSTRUCT"),
		),
	}
	cl.PopulateKconfig(options(t, "CONFIG_BUG", "y", "CONFIG_DEVMEM", "y"))
	cl.Evaluate()
	return cl
}

func TestPrintChecklistNormal(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintChecklist(&buf, ModeNormal, evaluatedChecklist(t), true); err != nil {
		t.Fatalf("PrintChecklist() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"option name",
		"check result",
		"CONFIG_BUG",
		"| OK",
		"CONFIG_DEVMEM",
		`| FAIL: "y"`,
		"CONFIG_RANDSTRUCT_FULL",
		"[+] Config check is finished: 'OK' - 1 / 'FAIL' - 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	// Compact mode renders one row per rule, not the combinator's children.
	if strings.Contains(out, "GCC_PLUGIN_RANDSTRUCT") {
		t.Errorf("combinator child leaked into compact output:\n%s", out)
	}
}

func TestPrintChecklistVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintChecklist(&buf, ModeVerbose, evaluatedChecklist(t), true); err != nil {
		t.Fatalf("PrintChecklist() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<<< OR >>>", "CONFIG_GCC_PLUGIN_RANDSTRUCT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestPrintChecklistFiltering(t *testing.T) {
	t.Run("show_ok", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintChecklist(&buf, ModeShowOK, evaluatedChecklist(t), true); err != nil {
			t.Fatalf("PrintChecklist() error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "CONFIG_BUG") {
			t.Errorf("passing rule missing:\n%s", out)
		}
		if strings.Contains(out, "CONFIG_DEVMEM") {
			t.Errorf("failing rule not suppressed:\n%s", out)
		}
		if !strings.Contains(out, "'FAIL' - 2 (suppressed in output)") {
			t.Errorf("score does not flag suppression:\n%s", out)
		}
	})

	t.Run("show_fail", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintChecklist(&buf, ModeShowFail, evaluatedChecklist(t), true); err != nil {
			t.Fatalf("PrintChecklist() error: %v", err)
		}
		out := buf.String()
		if strings.Contains(out, "CONFIG_BUG") {
			t.Errorf("passing rule not suppressed:\n%s", out)
		}
		if !strings.Contains(out, "'OK' - 1 (suppressed in output)") {
			t.Errorf("score does not flag suppression:\n%s", out)
		}
	})
}

func TestPrintChecklistJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintChecklist(&buf, ModeJSON, evaluatedChecklist(t), true); err != nil {
		t.Fatalf("PrintChecklist() error: %v", err)
	}

	var rules [][]any
	if err := json.Unmarshal(buf.Bytes(), &rules); err != nil {
		t.Fatalf("output is not a JSON array of arrays: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}

	first := rules[0]
	want := []any{"CONFIG_BUG", "kconfig", "y", "defconfig", "self_protection", "OK"}
	if len(first) != len(want) {
		t.Fatalf("rule has %d fields, want %d: %v", len(first), len(want), first)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("field %d = %v, want %v", i, first[i], want[i])
		}
	}

	// A combinator dumps as its first child plus its own result.
	or := rules[2]
	if or[0] != "CONFIG_RANDSTRUCT_FULL" || or[len(or)-1] != "FAIL: not found" {
		t.Errorf("combinator dump = %v", or)
	}
}

func TestPrintChecklistJSONPresenceExpected(t *testing.T) {
	cl := Checklist{NewKconfigPresence("self_protection", "kspp", "GCC_PLUGINS")}

	var buf bytes.Buffer
	if err := PrintChecklist(&buf, ModeJSON, cl, false); err != nil {
		t.Fatalf("PrintChecklist() error: %v", err)
	}

	var rules [][]any
	if err := json.Unmarshal(buf.Bytes(), &rules); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// A presence-only check has no expected value to report.
	if rules[0][2] != nil {
		t.Errorf("expected field = %v, want null", rules[0][2])
	}
	// Without results the dump stops after the descriptive fields.
	if len(rules[0]) != 5 {
		t.Errorf("rule has %d fields, want 5", len(rules[0]))
	}
}

func TestPrintChecklistWithoutResults(t *testing.T) {
	cl := Checklist{NewKconfigCheck("self_protection", "defconfig", "BUG", "y")}

	var buf bytes.Buffer
	if err := PrintChecklist(&buf, ModeNormal, cl, false); err != nil {
		t.Fatalf("PrintChecklist() error: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "check result") {
		t.Errorf("result column present without results:\n%s", out)
	}
	if strings.Contains(out, "Config check is finished") {
		t.Errorf("score present without results:\n%s", out)
	}
}

func TestPrintUnknownOptions(t *testing.T) {
	cl := Checklist{NewKconfigCheck("self_protection", "defconfig", "BUG", "y")}
	parsed := options(t, "CONFIG_BUG", "y", "CONFIG_FOO", "m", "CONFIG_BAR", NotSet)

	var buf bytes.Buffer
	PrintUnknownOptions(&buf, cl, parsed)
	out := buf.String()

	if strings.Contains(out, "CONFIG_BUG") {
		t.Errorf("known option reported:\n%s", out)
	}
	for _, want := range []string{
		"[?] No check for option CONFIG_FOO (m)",
		"[?] No check for option CONFIG_BAR (is not set)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestReportModeNames(t *testing.T) {
	want := []string{"normal", "verbose", "json", "show_ok", "show_fail"}
	got := ReportModeNames()
	if len(got) != len(want) {
		t.Fatalf("ReportModeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReportModeNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPadCenter(t *testing.T) {
	cases := []struct {
		s    string
		w    int
		want string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"abcdef", 4, "abcdef"},
	}
	for _, tc := range cases {
		if got := padCenter(tc.s, tc.w); got != tc.want {
			t.Errorf("padCenter(%q, %d) = %q, want %q", tc.s, tc.w, got, tc.want)
		}
	}
}
