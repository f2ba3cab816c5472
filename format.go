package hardening

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReportMode selects how a checklist is rendered.
type ReportMode int

const (
	// ModeNormal is the default one-row-per-rule table.
	ModeNormal ReportMode = iota
	// ModeVerbose expands combinator rules into their children and enables
	// the unknown-option report.
	ModeVerbose
	// ModeJSON renders the checklist as a JSON array.
	ModeJSON
	// ModeShowOK only renders passing rules.
	ModeShowOK
	// ModeShowFail only renders failing rules.
	ModeShowFail
)

var reportModeNames = map[ReportMode]string{
	ModeNormal:   "normal",
	ModeVerbose:  "verbose",
	ModeJSON:     "json",
	ModeShowOK:   "show_ok",
	ModeShowFail: "show_fail",
}

func (m ReportMode) String() string {
	if name, ok := reportModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ReportMode(%d)", m)
}

// ReportModeValues returns all report modes in a stable order.
func ReportModeValues() []ReportMode {
	return []ReportMode{ModeNormal, ModeVerbose, ModeJSON, ModeShowOK, ModeShowFail}
}

// ReportModeNames returns the names of all report modes in a stable order.
func ReportModeNames() []string {
	values := ReportModeValues()
	names := make([]string, 0, len(values))
	for _, m := range values {
		names = append(names, m.String())
	}
	return names
}

const tableWidth = 91

// padCenter centers s in a field of width w, extra padding on the right.
func padCenter(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	right := w - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// PrintChecklist renders the checklist to w in the given mode. withResults
// controls whether the result column (and the final score) is included;
// printing hardening preferences without a target config omits it.
func PrintChecklist(w io.Writer, mode ReportMode, cl Checklist, withResults bool) error {
	if mode == ModeJSON {
		output := make([][]any, 0, len(cl))
		for _, c := range cl {
			output = append(output, jsonDump(c, withResults))
		}
		return json.NewEncoder(w).Encode(output)
	}

	sepLen := tableWidth
	if withResults {
		sepLen += 30
	}
	sep := strings.Repeat("=", sepLen)

	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-40s|%s|%s|%s|%s",
		padCenter("option name", 40), padCenter("type", 7), padCenter("desired val", 12),
		padCenter("decision", 10), padCenter("reason", 18))
	if withResults {
		fmt.Fprint(w, "| check result")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)

	for _, c := range cl {
		if withResults {
			if mode == ModeShowOK && !c.Result().OK() {
				continue
			}
			if mode == ModeShowFail && c.Result().OK() {
				continue
			}
		}
		printCheck(w, mode, c, withResults)
		fmt.Fprintln(w)
		if mode == ModeVerbose {
			fmt.Fprintln(w, strings.Repeat("-", sepLen))
		}
	}
	fmt.Fprintln(w)

	if withResults {
		ok, fail := cl.Tally()
		okSuppressed, failSuppressed := "", ""
		if mode == ModeShowOK {
			failSuppressed = " (suppressed in output)"
		}
		if mode == ModeShowFail {
			okSuppressed = " (suppressed in output)"
		}
		fmt.Fprintf(w, "[+] Config check is finished: 'OK' - %d%s / 'FAIL' - %d%s\n",
			ok, okSuppressed, fail, failSuppressed)
	}
	return nil
}

func printCheck(w io.Writer, mode ReportMode, c Check, withResults bool) {
	switch cc := c.(type) {
	case *KconfigCheck:
		printOptRow(w, &cc.OptCheck, cc.Type(), withResults)
	case *CmdlineCheck:
		printOptRow(w, &cc.OptCheck, cc.Type(), withResults)
	case *VersionCheck:
		fmt.Fprintf(w, "%-91s", "kernel version >= "+cc.Required().String())
		if withResults {
			fmt.Fprintf(w, "| %s", cc.Result())
		}
	case *OR:
		printComplex(w, mode, c, "OR", cc.children, withResults)
	case *AND:
		printComplex(w, mode, c, "AND", cc.children, withResults)
	}
}

func printOptRow(w io.Writer, o *OptCheck, typeName string, withResults bool) {
	fmt.Fprintf(w, "%-40s|%s|%s|%s|%s",
		o.Name(), padCenter(typeName, 7), padCenter(o.Expected(), 12),
		padCenter(o.Decision(), 10), padCenter(o.Reason(), 18))
	if withResults {
		fmt.Fprintf(w, "| %s", o.Result())
	}
}

func printComplex(w io.Writer, mode ReportMode, c Check, kind string, children []Check, withResults bool) {
	if mode == ModeVerbose {
		fmt.Fprintf(w, "    %-87s", "<<< "+kind+" >>>")
		if withResults {
			fmt.Fprintf(w, "| %s", c.Result())
		}
		for _, child := range children {
			fmt.Fprintln(w)
			printCheck(w, mode, child, withResults)
		}
		return
	}

	// Compact mode: the rule renders as its first child's row, carrying the
	// combinator's own result.
	printCheck(w, mode, children[0], false)
	if withResults {
		fmt.Fprintf(w, "| %s", c.Result())
	}
}

func jsonDump(c Check, withResults bool) []any {
	switch cc := c.(type) {
	case *KconfigCheck:
		return jsonDumpOpt(&cc.OptCheck, cc.Type(), cc.expectAny, withResults)
	case *CmdlineCheck:
		return jsonDumpOpt(&cc.OptCheck, cc.Type(), cc.expectAny, withResults)
	case *OR:
		dump := jsonDump(cc.children[0], false)
		if withResults {
			dump = append(dump, cc.Result().Text)
		}
		return dump
	case *AND:
		dump := jsonDump(cc.children[0], false)
		if withResults {
			dump = append(dump, cc.Result().Text)
		}
		return dump
	}
	return nil
}

func jsonDumpOpt(o *OptCheck, typeName string, expectAny, withResults bool) []any {
	var expected any
	if !expectAny {
		expected = o.Expected()
	}
	dump := []any{o.Name(), typeName, expected, o.Decision(), o.Reason()}
	if withResults {
		dump = append(dump, o.Result().Text)
	}
	return dump
}

// PrintUnknownOptions lists every parsed option the checklist has no check
// for, in input order.
func PrintUnknownOptions(w io.Writer, cl Checklist, parsed *ParsedOptions) {
	known := make(map[string]struct{})
	for _, name := range cl.KnownOptions() {
		known[name] = struct{}{}
	}

	for _, name := range parsed.Names() {
		if _, ok := known[name]; ok {
			continue
		}
		value, _ := parsed.Get(name)
		fmt.Fprintf(w, "[?] No check for option %s (%s)\n", name, value)
	}
}
