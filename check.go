package hardening

import "fmt"

// Check is the sealed interface over every rule shape the checklist can
// hold: kconfig and cmdline option checks, version checks, and the OR/AND
// combinators. Construction happens once per run through the New* functions;
// evaluation is driven by [Checklist.Evaluate].
type Check interface {
	// Type returns the check kind: "kconfig", "cmdline", "version",
	// or "complex".
	Type() string
	// Result returns the evaluation outcome. It is only meaningful after
	// the checklist has been evaluated.
	Result() Result

	evaluate()
}

// OptCheck is the common core of kconfig and cmdline checks: an option
// identity, an optional expected value, and two descriptive tags used for
// reporting only. The actual state is bound later by the population passes.
type OptCheck struct {
	name      string
	expected  string
	expectAny bool
	reason    string
	decision  string

	// Actual state, populated once before evaluation. The empty string is a
	// valid present value (a bare cmdline token), distinct from absent.
	state   string
	present bool

	result Result
}

func newOptCheck(kind, reason, decision, name, expected string, expectAny bool) OptCheck {
	if name == "" || reason == "" || decision == "" {
		panic(fmt.Sprintf("invalid %s check for %q", kind, name))
	}
	return OptCheck{
		name:      name,
		expected:  expected,
		expectAny: expectAny,
		reason:    reason,
		decision:  decision,
	}
}

// Name returns the option identity, including the CONFIG_ prefix for
// kconfig checks.
func (o *OptCheck) Name() string { return o.name }

// Expected returns the expected value, or the empty string for a
// presence-only check.
func (o *OptCheck) Expected() string { return o.expected }

// Reason returns the hardening category this check belongs to.
func (o *OptCheck) Reason() string { return o.reason }

// Decision returns the source that recommends this check.
func (o *OptCheck) Decision() string { return o.decision }

// Result returns the evaluation outcome.
func (o *OptCheck) Result() Result { return o.result }

func (o *OptCheck) populate(opts *ParsedOptions) {
	o.state, o.present = opts.Get(o.name)
}

func (o *OptCheck) evaluate() {
	// Presence-only check: any value is acceptable.
	if o.expectAny {
		if o.present {
			o.result = Result{VerdictOKPresent, "OK: is present"}
		} else {
			o.result = Result{VerdictFailNotPresent, "FAIL: not present"}
		}
		return
	}

	switch {
	case o.present && o.state == o.expected:
		o.result = Result{VerdictOK, "OK"}
	case !o.present:
		if o.expected == NotSet {
			o.result = Result{VerdictOKNotFound, "OK: not found"}
		} else {
			o.result = Result{VerdictFailNotFound, "FAIL: not found"}
		}
	default:
		o.result = Result{VerdictFailValue, `FAIL: "` + o.state + `"`}
	}
}

// KconfigCheck checks a kernel build configuration option.
type KconfigCheck struct {
	OptCheck
}

// NewKconfigCheck creates a check requiring the kconfig option name to have
// the expected value. The name is namespaced with the CONFIG_ prefix for the
// life of the check. Empty reason, decision, or name panics.
func NewKconfigCheck(reason, decision, name, expected string) *KconfigCheck {
	c := &KconfigCheck{newOptCheck("kconfig", reason, decision, name, expected, false)}
	c.name = "CONFIG_" + c.name
	return c
}

// NewKconfigPresence creates a check requiring the kconfig option name to be
// present with any value.
func NewKconfigPresence(reason, decision, name string) *KconfigCheck {
	c := &KconfigCheck{newOptCheck("kconfig", reason, decision, name, "", true)}
	c.name = "CONFIG_" + c.name
	return c
}

// Type returns "kconfig".
func (c *KconfigCheck) Type() string { return "kconfig" }

// CmdlineCheck checks a kernel boot command line parameter.
type CmdlineCheck struct {
	OptCheck
}

// NewCmdlineCheck creates a check requiring the boot parameter name to have
// the expected value, after normalization (see [ParseCmdline]).
func NewCmdlineCheck(reason, decision, name, expected string) *CmdlineCheck {
	return &CmdlineCheck{newOptCheck("cmdline", reason, decision, name, expected, false)}
}

// NewCmdlinePresence creates a check requiring the boot parameter name to be
// present with any value.
func NewCmdlinePresence(reason, decision, name string) *CmdlineCheck {
	return &CmdlineCheck{newOptCheck("cmdline", reason, decision, name, "", true)}
}

// Type returns "cmdline".
func (c *CmdlineCheck) Type() string { return "cmdline" }

// VersionCheck passes when the detected kernel version satisfies a minimum
// (major, minor) bound. It only appears nested inside combinators.
type VersionCheck struct {
	required KernelVersion
	actual   KernelVersion
	result   Result
}

// NewVersionCheck creates a minimum kernel version check.
func NewVersionCheck(major, minor int) *VersionCheck {
	return &VersionCheck{required: KernelVersion{Major: major, Minor: minor}}
}

// Type returns "version".
func (v *VersionCheck) Type() string { return "version" }

// Required returns the minimum version bound.
func (v *VersionCheck) Required() KernelVersion { return v.required }

// Result returns the evaluation outcome.
func (v *VersionCheck) Result() Result { return v.result }

func (v *VersionCheck) populate(version KernelVersion) {
	v.actual = version
}

func (v *VersionCheck) evaluate() {
	if v.actual.AtLeast(v.required) {
		v.result = Result{VerdictOKVersion, "OK: version >= " + v.required.String()}
	} else {
		v.result = Result{VerdictFailVersion, "FAIL: version < " + v.required.String()}
	}
}

// complexCheck is the shared core of the OR and AND combinators: an ordered
// sequence of at least two children, the first of which is the option the
// rule is about. Identity and expected value delegate to that first child.
type complexCheck struct {
	children []Check
	result   Result
}

func newComplexCheck(kind string, children []Check) complexCheck {
	if len(children) < 2 {
		panic(fmt.Sprintf("useless %s check with %d children", kind, len(children)))
	}
	switch children[0].(type) {
	case *KconfigCheck, *CmdlineCheck:
	default:
		panic(fmt.Sprintf("invalid %s check: first child must be a kconfig or cmdline check", kind))
	}
	return complexCheck{children: children}
}

// Type returns "complex".
func (c *complexCheck) Type() string { return "complex" }

// Result returns the evaluation outcome.
func (c *complexCheck) Result() Result { return c.result }

// Children returns the ordered child checks.
func (c *complexCheck) Children() []Check { return c.children }

func (c *complexCheck) first() *OptCheck {
	switch fc := c.children[0].(type) {
	case *KconfigCheck:
		return &fc.OptCheck
	case *CmdlineCheck:
		return &fc.OptCheck
	}
	// Unreachable: newComplexCheck rejects any other first child.
	panic("complex check with invalid first child")
}

// Name returns the first child's option identity.
func (c *complexCheck) Name() string { return c.first().Name() }

// Expected returns the first child's expected value.
func (c *complexCheck) Expected() string { return c.first().Expected() }

// Reason returns the first child's hardening category.
func (c *complexCheck) Reason() string { return c.first().Reason() }

// Decision returns the first child's decision source.
func (c *complexCheck) Decision() string { return c.first().Decision() }

// checkIdentity resolves the reported name and expected value of a child,
// looking through nested combinators.
func checkIdentity(c Check) (name, expected string) {
	switch cc := c.(type) {
	case *KconfigCheck:
		return cc.Name(), cc.Expected()
	case *CmdlineCheck:
		return cc.Name(), cc.Expected()
	case *OR:
		return cc.Name(), cc.Expected()
	case *AND:
		return cc.Name(), cc.Expected()
	}
	return "", ""
}

// OR passes when any child passes: the primary option is satisfied, or one
// of the fallback conditions is. Children are evaluated strictly in order
// and evaluation stops at the first passing child.
type OR struct {
	complexCheck
}

// NewOR creates an OR combinator. Fewer than two children, or a first child
// that is not a kconfig/cmdline check, panics.
func NewOR(children ...Check) *OR {
	return &OR{newComplexCheck("OR", children)}
}

func (o *OR) evaluate() {
	for i, child := range o.children {
		child.evaluate()
		res := child.Result()
		if !res.OK() {
			continue
		}
		if i == 0 {
			o.result = res
			return
		}
		// A fallback won: name which one, and why it passed.
		name, expected := checkIdentity(child)
		switch res.Verdict {
		case VerdictOK:
			o.result = Result{VerdictOK, fmt.Sprintf("OK: %s %q", name, expected)}
		case VerdictOKNotFound:
			o.result = Result{VerdictOKNotFound, fmt.Sprintf("OK: %s not found", name)}
		case VerdictOKPresent:
			o.result = Result{VerdictOKPresent, fmt.Sprintf("OK: %s is present", name)}
		default:
			// A version check already names its bound.
			o.result = res
		}
		return
	}
	// No child passed: the first child's failure explains the rule.
	o.result = o.children[0].Result()
}

// AND passes when every child passes. Children are evaluated in reverse
// order: the trailing children are prerequisites of the first, and a failing
// prerequisite fails the rule without ever evaluating the first child.
type AND struct {
	complexCheck
}

// NewAND creates an AND combinator. Fewer than two children, or a first
// child that is not a kconfig/cmdline check, panics.
func NewAND(children ...Check) *AND {
	return &AND{newComplexCheck("AND", children)}
}

func (a *AND) evaluate() {
	for i := len(a.children) - 1; i >= 0; i-- {
		child := a.children[i]
		child.evaluate()
		res := child.Result()
		if i == 0 {
			a.result = res
			return
		}
		if res.OK() {
			continue
		}
		// The failure comes from a prerequisite, not from the option this
		// rule is about. Say so.
		name, expected := checkIdentity(child)
		switch res.Verdict {
		case VerdictFailValue, VerdictFailNotFound:
			a.result = Result{res.Verdict, fmt.Sprintf("FAIL: %s not %q", name, expected)}
		case VerdictFailNotPresent:
			a.result = Result{VerdictFailNotPresent, fmt.Sprintf("FAIL: %s not present", name)}
		default:
			// A version check already names its bound.
			a.result = res
		}
		return
	}
}
