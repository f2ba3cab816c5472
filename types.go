package hardening

import "fmt"

// Arch identifies a kernel architecture the checklist can be built for.
type Arch int

const (
	// ArchX86_64 is the 64-bit x86 architecture (CONFIG_X86_64).
	ArchX86_64 Arch = iota
	// ArchX86_32 is the 32-bit x86 architecture (CONFIG_X86_32).
	ArchX86_32
	// ArchARM64 is the 64-bit ARM architecture (CONFIG_ARM64).
	ArchARM64
	// ArchARM is the 32-bit ARM architecture (CONFIG_ARM).
	ArchARM
)

var archNames = map[Arch]string{
	ArchX86_64: "X86_64",
	ArchX86_32: "X86_32",
	ArchARM64:  "ARM64",
	ArchARM:    "ARM",
}

func (a Arch) String() string {
	if name, ok := archNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Arch(%d)", a)
}

// ArchValues returns all supported architectures in a stable order.
func ArchValues() []Arch {
	return []Arch{ArchX86_64, ArchX86_32, ArchARM64, ArchARM}
}

// ArchNames returns the names of all supported architectures in a stable order.
func ArchNames() []string {
	values := ArchValues()
	names := make([]string, 0, len(values))
	for _, a := range values {
		names = append(names, a.String())
	}
	return names
}

// KernelVersion is the (major, minor) pair extracted from the kconfig
// version banner. Only these two components take part in version checks.
type KernelVersion struct {
	Major int
	Minor int
}

// AtLeast reports whether v >= required, comparing (major, minor)
// lexicographically.
func (v KernelVersion) AtLeast(required KernelVersion) bool {
	if v.Major != required.Major {
		return v.Major > required.Major
	}
	return v.Minor >= required.Minor
}

func (v KernelVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// NotSet is the expected-value sentinel meaning the option must be absent.
// The kconfig parser also stores it as the value of explicitly disabled
// options ("# CONFIG_FOO is not set" lines).
const NotSet = "is not set"

// Verdict classifies an evaluation outcome. Combinators dispatch on it when
// synthesizing their own explanation, so the rendered text is never parsed.
type Verdict int

const (
	// VerdictOK means the expected value matched the actual value.
	VerdictOK Verdict = iota
	// VerdictOKNotFound means the option was absent, as required.
	VerdictOKNotFound
	// VerdictOKPresent means a presence-only check found the option.
	VerdictOKPresent
	// VerdictOKVersion means the kernel version satisfies the required bound.
	VerdictOKVersion
	// VerdictFailNotFound means the option was absent but a value was expected.
	VerdictFailNotFound
	// VerdictFailNotPresent means a presence-only check did not find the option.
	VerdictFailNotPresent
	// VerdictFailValue means the option was present with the wrong value.
	VerdictFailValue
	// VerdictFailVersion means the kernel version is below the required bound.
	VerdictFailVersion
)

// Result is an evaluation outcome: a verdict for programmatic dispatch and
// the rendered explanation shown in reports.
type Result struct {
	Verdict Verdict
	Text    string
}

// OK reports whether the result is a passing one.
func (r Result) OK() bool {
	switch r.Verdict {
	case VerdictOK, VerdictOKNotFound, VerdictOKPresent, VerdictOKVersion:
		return true
	}
	return false
}

func (r Result) String() string {
	return r.Text
}
