package hardening

import "testing"

// ruleNames collects the reported identity of every top-level rule.
func ruleNames(cl Checklist) map[string]int {
	names := make(map[string]int, len(cl))
	for _, c := range cl {
		name, _ := checkIdentity(c)
		names[name]++
	}
	return names
}

func TestKconfigRulesPerArch(t *testing.T) {
	for _, arch := range ArchValues() {
		t.Run(arch.String(), func(t *testing.T) {
			cl := KconfigRules(arch)
			if len(cl) < 50 {
				t.Fatalf("only %d rules for %s", len(cl), arch)
			}

			names := ruleNames(cl)
			universal := []string{"CONFIG_BUG", "CONFIG_WERROR", "CONFIG_STRICT_KERNEL_RWX", "CONFIG_SLAB_FREELIST_RANDOM"}
			for _, name := range universal {
				if names[name] == 0 {
					t.Errorf("no rule for %s", name)
				}
			}

			switch arch {
			case ArchX86_64:
				if names["CONFIG_PAGE_TABLE_ISOLATION"] == 0 {
					t.Error("no rule for CONFIG_PAGE_TABLE_ISOLATION")
				}
				if names["CONFIG_ARM64_PTR_AUTH_KERNEL"] != 0 {
					t.Error("unexpected ARM64 rule on X86_64")
				}
			case ArchARM64:
				if names["CONFIG_ARM64_PTR_AUTH_KERNEL"] == 0 {
					t.Error("no rule for CONFIG_ARM64_PTR_AUTH_KERNEL")
				}
				if names["CONFIG_PAGE_TABLE_ISOLATION"] != 0 {
					t.Error("unexpected x86 rule on ARM64")
				}
			}
		})
	}
}

func TestCmdlineRulesPerArch(t *testing.T) {
	for _, arch := range ArchValues() {
		t.Run(arch.String(), func(t *testing.T) {
			cl := CmdlineRules(arch)
			if len(cl) == 0 {
				t.Fatal("no cmdline rules")
			}

			names := ruleNames(cl)
			universal := []string{"rodata", "init_on_alloc", "slab_nomerge", "page_alloc.shuffle", "debugfs"}
			for _, name := range universal {
				if names[name] == 0 {
					t.Errorf("no rule for %s", name)
				}
			}

			switch arch {
			case ArchX86_64:
				for _, name := range []string{"pti", "vsyscall"} {
					if names[name] == 0 {
						t.Errorf("no rule for %s", name)
					}
				}
			case ArchARM64, ArchARM:
				for _, name := range []string{"pti", "vsyscall"} {
					if names[name] != 0 {
						t.Errorf("unexpected x86 rule %s", name)
					}
				}
			}
		})
	}
}

// The whole catalog must evaluate cleanly against empty inputs: no panics,
// and every rule delivers a rendered result.
func TestRulesEvaluateOnEmptyInput(t *testing.T) {
	for _, arch := range ArchValues() {
		t.Run(arch.String(), func(t *testing.T) {
			cl := KconfigRules(arch)
			cl = append(cl, CmdlineRules(arch)...)

			cl.PopulateKconfig(NewParsedOptions())
			cl.PopulateCmdline(NewParsedOptions())
			cl.PopulateVersion(KernelVersion{6, 8})
			cl.Evaluate()

			for i, c := range cl {
				if c.Result().Text == "" {
					name, _ := checkIdentity(c)
					t.Errorf("rule %d (%s) has no result", i, name)
				}
			}
		})
	}
}
