package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	hardening "github.com/aliceinwire/kconfig-hardened-check"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags. When built without ldflags (e.g.,
// plain `go build`), these remain at their zero values and the version
// command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "kconfig-hardened-check",
		Short: "Check Linux kernel security hardening options",
		Long: `kconfig-hardened-check checks a kernel build configuration (and optionally
the kernel cmdline) against security hardening preferences.

The preferences come from the kernel defconfigs, the KSPP recommended
settings, the CLIP OS kernel configuration, and the options disabled by
grsecurity, among others. All inputs are static text snapshots: the tool
never modifies anything and can check configs built for another machine.`,
		SilenceUsage: true,
	}

	root.AddCommand(checkCmd())
	root.AddCommand(printCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var reportModeIDs = func() map[hardening.ReportMode][]string {
	ids := make(map[hardening.ReportMode][]string, len(hardening.ReportModeValues()))
	for _, m := range hardening.ReportModeValues() {
		ids[m] = []string{m.String()}
	}
	return ids
}()

var archIDs = func() map[hardening.Arch][]string {
	ids := make(map[hardening.Arch][]string, len(hardening.ArchValues()))
	for _, a := range hardening.ArchValues() {
		ids[a] = []string{a.String()}
	}
	return ids
}()

func parseReportMode(input string) (hardening.ReportMode, error) {
	var mode hardening.ReportMode
	enumValue := enumflag.New(&mode, "mode", reportModeIDs, enumflag.EnumCaseInsensitive)
	if err := enumValue.Set(strings.TrimSpace(input)); err != nil {
		return 0, fmt.Errorf("unknown report mode: %q (available: %s)",
			input, strings.Join(hardening.ReportModeNames(), ", "))
	}
	return mode, nil
}

func parseArch(input string) (hardening.Arch, error) {
	var arch hardening.Arch
	enumValue := enumflag.New(&arch, "arch", archIDs, enumflag.EnumCaseInsensitive)
	if err := enumValue.Set(strings.TrimSpace(input)); err != nil {
		return 0, fmt.Errorf("unknown architecture: %q (available: %s)",
			input, strings.Join(hardening.ArchNames(), ", "))
	}
	return arch, nil
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Config  string               `flag:"config" flagshort:"c" flagdescr:"Kernel kconfig file to check"`
	Cmdline string               `flag:"cmdline" flagshort:"l" flagdescr:"Kernel cmdline file to check"`
	Running bool                 `flag:"running" flagshort:"r" flagdescr:"Check the running kernel's config (Linux only)"`
	Mode    hardening.ReportMode `flag:"mode" flagshort:"m" flagdescr:"Report mode (see available modes above)" flagcustom:"true"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineMode(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*hardening.ReportMode)
	*fieldPtr = hardening.ModeNormal
	return enumflag.New(fieldPtr, "mode", reportModeIDs, enumflag.EnumCaseInsensitive), descr
}

func (o *CheckOptions) DecodeMode(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseReportMode(s)
}

func checkCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a kernel kconfig (and cmdline) against the hardening preferences",
		Long: fmt.Sprintf(`Check a kernel kconfig file, and optionally a kernel cmdline file, against
the security hardening preferences. The target architecture and kernel
version are detected from the kconfig file itself.

Available report modes:
  %s`, strings.Join(hardening.ReportModeNames(), ", ")),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(opts)
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func runCheck(opts *CheckOptions) error {
	var (
		configData []byte
		configName string
		err        error
	)
	switch {
	case opts.Running && opts.Config != "":
		return errors.New("--config and --running can't be used together")
	case opts.Running:
		configName = "running kernel config"
		configData, err = hardening.ReadSystemKconfig()
	case opts.Config != "":
		configName = opts.Config
		configData, err = os.ReadFile(opts.Config)
	default:
		return errors.New("no kconfig to check: use --config or --running")
	}
	if err != nil {
		return err
	}

	mode := opts.Mode
	quiet := mode == hardening.ModeJSON
	if !quiet {
		if mode != hardening.ModeNormal {
			fmt.Printf("[+] Special report mode: %s\n", mode)
		}
		fmt.Printf("[+] Kconfig file to check: %s\n", configName)
		if opts.Cmdline != "" {
			fmt.Printf("[+] Kernel cmdline file to check: %s\n", opts.Cmdline)
		}
	}

	arch, err := hardening.DetectArch(bytes.NewReader(configData))
	if err != nil {
		return fmt.Errorf("%s: %w", configName, err)
	}
	if !quiet {
		fmt.Printf("[+] Detected architecture: %s\n", arch)
	}

	kernelVersion, err := hardening.DetectVersion(bytes.NewReader(configData))
	if err != nil {
		return fmt.Errorf("%s: %w", configName, err)
	}
	if !quiet {
		fmt.Printf("[+] Detected kernel version: %s\n", kernelVersion)
	}

	checklist := hardening.KconfigRules(arch)
	if opts.Cmdline != "" {
		checklist = append(checklist, hardening.CmdlineRules(arch)...)
	}

	kconfigOpts, err := hardening.ParseKconfig(bytes.NewReader(configData))
	if err != nil {
		return fmt.Errorf("%s: %w", configName, err)
	}
	checklist.PopulateKconfig(kconfigOpts)
	checklist.PopulateVersion(kernelVersion)

	if opts.Cmdline != "" {
		cmdlineData, err := os.ReadFile(opts.Cmdline)
		if err != nil {
			return err
		}
		cmdlineOpts, err := hardening.ParseCmdline(bytes.NewReader(cmdlineData))
		if err != nil {
			return fmt.Errorf("%s: %w", opts.Cmdline, err)
		}
		checklist.PopulateCmdline(cmdlineOpts)
	}

	checklist.Evaluate()

	if mode == hardening.ModeVerbose {
		hardening.PrintUnknownOptions(os.Stdout, checklist, kconfigOpts)
	}
	return hardening.PrintChecklist(os.Stdout, mode, checklist, true)
}

// PrintOptions defines flags for the print subcommand.
type PrintOptions struct {
	Arch hardening.Arch       `flag:"arch" flagshort:"a" flagdescr:"Target architecture (see available architectures above)" flagrequired:"true" flagcustom:"true"`
	Mode hardening.ReportMode `flag:"mode" flagshort:"m" flagdescr:"Report mode (normal, verbose, or json)" flagcustom:"true"`
}

func (o *PrintOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *PrintOptions) DefineArch(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*hardening.Arch)
	*fieldPtr = hardening.ArchX86_64
	return enumflag.New(fieldPtr, "arch", archIDs, enumflag.EnumCaseInsensitive), descr
}

func (o *PrintOptions) DecodeArch(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseArch(s)
}

func (o *PrintOptions) DefineMode(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*hardening.ReportMode)
	*fieldPtr = hardening.ModeNormal
	return enumflag.New(fieldPtr, "mode", reportModeIDs, enumflag.EnumCaseInsensitive), descr
}

func (o *PrintOptions) DecodeMode(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseReportMode(s)
}

func printCmd() *cobra.Command {
	opts := &PrintOptions{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the security hardening preferences for an architecture",
		Long: fmt.Sprintf(`Print the security hardening preferences without checking anything.

Available architectures:
  %s`, strings.Join(hardening.ArchNames(), ", ")),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if opts.Mode == hardening.ModeShowOK || opts.Mode == hardening.ModeShowFail {
				return fmt.Errorf("wrong mode %q for print", opts.Mode)
			}

			checklist := hardening.KconfigRules(opts.Arch)
			checklist = append(checklist, hardening.CmdlineRules(opts.Arch)...)

			if opts.Mode != hardening.ModeJSON {
				fmt.Printf("[+] Printing kernel security hardening preferences for %s...\n", opts.Arch)
			}
			return hardening.PrintChecklist(os.Stdout, opts.Mode, checklist, false)
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tool version",
		Run: func(c *cobra.Command, args []string) {
			if version != "" {
				fmt.Printf("kconfig-hardened-check %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("kconfig-hardened-check (dev)")
			}
		},
	}
}
