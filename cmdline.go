package hardening

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrMultiLineCmdline is returned when the cmdline file holds more than one
// line of content.
var ErrMultiLineCmdline = errors.New("more than one line in the cmdline file")

// rawCmdlineParams are boot parameters the kernel does not parse with
// kstrtobool(); their values are semantically significant as-is and must not
// be normalized.
var rawCmdlineParams = map[string]struct{}{
	"pti":     {}, // pti_check_boottime_disable() in arch/x86/mm/pti.c
	"debugfs": {}, // debugfs_kernel() in fs/debugfs/inode.c
}

// normalizeCmdlineValue maps the boolean spellings accepted by the kernel's
// kstrtobool() onto "1" and "0" so that checks don't overfit to one
// spelling. Unique values pass through unchanged.
func normalizeCmdlineValue(name, value string) string {
	if _, raw := rawCmdlineParams[name]; raw {
		return value
	}
	switch value {
	case "1", "on", "On", "ON", "y", "Y", "yes", "Yes", "YES":
		return "1"
	case "0", "off", "Off", "OFF", "n", "N", "no", "No", "NO":
		return "0"
	}
	return value
}

// ParseCmdline parses a kernel boot command line: a single line of
// whitespace-separated name=value or bare name tokens. Bare tokens map to
// the empty string, which is distinct from absent. Values are normalized
// (see [normalizeCmdlineValue]). More than one non-empty line is an error.
func ParseCmdline(r io.Reader) (*ParsedOptions, error) {
	var content string
	var seen bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if seen {
			return nil, ErrMultiLineCmdline
		}
		content, seen = line, true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	opts := NewParsedOptions()
	for _, token := range strings.Fields(content) {
		name, value, _ := strings.Cut(token, "=")
		opts.set(name, normalizeCmdlineValue(name, value))
	}
	return opts, nil
}
