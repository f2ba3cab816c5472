package hardening

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Detection errors for [DetectArch] and [DetectVersion].
var (
	// ErrArchNotDetected is returned when no supported architecture marker
	// is found in the kconfig file.
	ErrArchNotDetected = errors.New("failed to detect architecture")
	// ErrAmbiguousArch is returned when more than one architecture marker
	// is found in the kconfig file.
	ErrAmbiguousArch = errors.New("more than one supported architecture is detected")
	// ErrVersionNotDetected is returned when the kconfig file carries no
	// version banner.
	ErrVersionNotDetected = errors.New("no kernel version detected")
)

// ParsedOptions is an order-preserving mapping from option name to value.
// Explicitly disabled kconfig options map to [NotSet]; bare cmdline
// parameters map to the empty string.
type ParsedOptions struct {
	names  []string
	values map[string]string
}

// NewParsedOptions returns an empty option mapping.
func NewParsedOptions() *ParsedOptions {
	return &ParsedOptions{values: make(map[string]string)}
}

// put records a name/value pair, reporting false when the name was already
// recorded.
func (p *ParsedOptions) put(name, value string) bool {
	if _, dup := p.values[name]; dup {
		return false
	}
	p.names = append(p.names, name)
	p.values[name] = value
	return true
}

// set records a name/value pair, overwriting any earlier value. A repeated
// name keeps its original position. The kernel itself honors the last
// occurrence of a repeated boot parameter, so the cmdline parser does too.
func (p *ParsedOptions) set(name, value string) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the value recorded for name and whether it is present.
func (p *ParsedOptions) Get(name string) (string, bool) {
	value, ok := p.values[name]
	return value, ok
}

// Names returns the option names in input order.
func (p *ParsedOptions) Names() []string {
	return p.names
}

// Len returns the number of recorded options.
func (p *ParsedOptions) Len() int {
	return len(p.names)
}

// isConfigName reports whether s is a valid kconfig option name, including
// the CONFIG_ prefix.
func isConfigName(s string) bool {
	rest, ok := strings.CutPrefix(s, "CONFIG_")
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

// isDigits reports whether s is non-empty and made of decimal digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseKconfig parses a kernel build configuration: one directive per line,
// either CONFIG_NAME=value or "# CONFIG_NAME is not set". Any other line is
// ignored. An enabled option whose value is the [NotSet] literal, a
// malformed disabled line, or a duplicate option name is an error.
func ParseKconfig(r io.Reader) (*ParsedOptions, error) {
	opts := NewParsedOptions()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var name, value string
		switch {
		case strings.HasPrefix(line, "CONFIG_"):
			n, v, ok := strings.Cut(line, "=")
			if !ok || !isConfigName(n) {
				continue
			}
			if v == NotSet {
				return nil, fmt.Errorf("bad enabled kconfig option %q", line)
			}
			name, value = n, v
		case strings.HasPrefix(line, "# CONFIG_"):
			n, rest, ok := strings.Cut(line[2:], " ")
			if !ok || !isConfigName(n) || !strings.HasPrefix(rest, NotSet) {
				continue
			}
			if rest != NotSet {
				return nil, fmt.Errorf("bad disabled kconfig option %q", line)
			}
			name, value = n, NotSet
		default:
			continue
		}

		if !opts.put(name, value) {
			return nil, fmt.Errorf("kconfig option %q exists multiple times", name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return opts, nil
}

// DetectArch scans a kconfig file for enabled architecture markers
// (CONFIG_X86_64=y and friends). Exactly one marker must be present.
func DetectArch(r io.Reader) (Arch, error) {
	byName := make(map[string]Arch, len(archNames))
	for arch, name := range archNames {
		byName["CONFIG_"+name] = arch
	}

	var (
		arch  Arch
		found bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		name, value, ok := strings.Cut(line, "=")
		if !ok || value != "y" || !isConfigName(name) {
			continue
		}
		a, known := byName[name]
		if !known {
			continue
		}
		if found {
			return 0, ErrAmbiguousArch
		}
		arch, found = a, true
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrArchNotDetected
	}
	return arch, nil
}

// DetectVersion scans a kconfig file for its version banner, e.g.
//
//	# Linux/x86_64 5.10.0 Kernel Configuration
//
// and returns the (major, minor) pair. The patch component is required to be
// present but is not retained.
func DetectVersion(r io.Reader) (KernelVersion, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "# Linux/") || !strings.Contains(line, " Kernel Configuration") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			return KernelVersion{}, fmt.Errorf("failed to parse the version banner %q", line)
		}
		verStr := parts[2]
		numbers := strings.Split(verStr, ".")
		if len(numbers) < 3 || !isDigits(numbers[0]) || !isDigits(numbers[1]) {
			return KernelVersion{}, fmt.Errorf("failed to parse the version %q", verStr)
		}
		major, _ := strconv.Atoi(numbers[0])
		minor, _ := strconv.Atoi(numbers[1])
		return KernelVersion{Major: major, Minor: minor}, nil
	}
	if err := scanner.Err(); err != nil {
		return KernelVersion{}, err
	}
	return KernelVersion{}, ErrVersionNotDetected
}
