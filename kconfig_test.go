package hardening

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKconfig(t *testing.T) {
	input := `# Linux/x86_64 6.8.0 Kernel Configuration
#
CONFIG_BUG=y
# CONFIG_DEVMEM is not set
CONFIG_DEFAULT_MMAP_MIN_ADDR=65536
CONFIG_LOCALVERSION=""

# Some comment that mentions CONFIG_FOO but is not a directive
`

	opts, err := ParseKconfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseKconfig() error: %v", err)
	}

	cases := []struct {
		name  string
		value string
	}{
		{"CONFIG_BUG", "y"},
		{"CONFIG_DEVMEM", NotSet},
		{"CONFIG_DEFAULT_MMAP_MIN_ADDR", "65536"},
		{"CONFIG_LOCALVERSION", `""`},
	}
	if got := opts.Len(); got != len(cases) {
		t.Fatalf("Len() = %d, want %d", got, len(cases))
	}
	for _, tc := range cases {
		value, ok := opts.Get(tc.name)
		if !ok {
			t.Errorf("%s not parsed", tc.name)
			continue
		}
		if value != tc.value {
			t.Errorf("%s = %q, want %q", tc.name, value, tc.value)
		}
	}

	names := opts.Names()
	for i, tc := range cases {
		if names[i] != tc.name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], tc.name)
		}
	}
}

func TestParseKconfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "contradictory enabled line",
			input:   "CONFIG_FOO=is not set\n",
			wantErr: "bad enabled kconfig option",
		},
		{
			name:    "trailing junk on disabled line",
			input:   "# CONFIG_FOO is not set yet\n",
			wantErr: "bad disabled kconfig option",
		},
		{
			name:    "duplicate option",
			input:   "CONFIG_FOO=y\nCONFIG_FOO=m\n",
			wantErr: "exists multiple times",
		},
		{
			name:    "duplicate across directive kinds",
			input:   "CONFIG_FOO=y\n# CONFIG_FOO is not set\n",
			wantErr: "exists multiple times",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseKconfig(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("ParseKconfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseKconfigIgnoresNoise(t *testing.T) {
	input := `# This file mentions is not set in prose
# CONFIG_ alone is not a name
CONFIG_=y
not a directive at all
`
	opts, err := ParseKconfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseKconfig() error: %v", err)
	}
	if got := opts.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestDetectArch(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Arch
	}{
		{"x86_64", "CONFIG_X86_64=y\nCONFIG_64BIT=y\n", ArchX86_64},
		{"x86_32", "CONFIG_X86_32=y\n", ArchX86_32},
		{"arm64", "CONFIG_ARM64=y\n", ArchARM64},
		{"arm", "CONFIG_ARM=y\n", ArchARM},
		{"marker value must be y", "CONFIG_ARM64=m\nCONFIG_ARM=y\n", ArchARM},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectArch(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("DetectArch() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("DetectArch() = %s, want %s", got, tc.want)
			}
		})
	}

	t.Run("no marker", func(t *testing.T) {
		_, err := DetectArch(strings.NewReader("CONFIG_RISCV=y\n"))
		if !errors.Is(err, ErrArchNotDetected) {
			t.Errorf("error = %v, want %v", err, ErrArchNotDetected)
		}
	})

	t.Run("two markers", func(t *testing.T) {
		_, err := DetectArch(strings.NewReader("CONFIG_X86_64=y\nCONFIG_ARM64=y\n"))
		if !errors.Is(err, ErrAmbiguousArch) {
			t.Errorf("error = %v, want %v", err, ErrAmbiguousArch)
		}
	})
}

func TestDetectVersion(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  KernelVersion
	}{
		{
			name:  "plain banner",
			input: "#\n# Linux/x86_64 6.8.0 Kernel Configuration\n#\n",
			want:  KernelVersion{6, 8},
		},
		{
			name:  "distro suffix",
			input: "# Linux/arm64 5.15.0-122-generic Kernel Configuration\n",
			want:  KernelVersion{5, 15},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectVersion(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("DetectVersion() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("DetectVersion() = %s, want %s", got, tc.want)
			}
		})
	}

	t.Run("no banner", func(t *testing.T) {
		_, err := DetectVersion(strings.NewReader("CONFIG_X86_64=y\n"))
		if !errors.Is(err, ErrVersionNotDetected) {
			t.Errorf("error = %v, want %v", err, ErrVersionNotDetected)
		}
	})

	t.Run("two version components", func(t *testing.T) {
		_, err := DetectVersion(strings.NewReader("# Linux/x86_64 6.8 Kernel Configuration\n"))
		if err == nil {
			t.Error("DetectVersion() succeeded, want error")
		}
	})

	t.Run("non-numeric major", func(t *testing.T) {
		_, err := DetectVersion(strings.NewReader("# Linux/x86_64 v6.8.0 Kernel Configuration\n"))
		if err == nil {
			t.Error("DetectVersion() succeeded, want error")
		}
	})
}
