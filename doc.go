// Package hardening checks a Linux kernel build configuration (and,
// optionally, its boot command line) against security hardening
// preferences for X86_64, ARM64, X86_32, and ARM.
//
// The package works on static text snapshots only: it never introspects a
// running system beyond optionally loading its config file, and it never
// writes configuration.
//
// # Model
//
// A rule is a [Check]: either a simple check on one input — [KconfigCheck],
// [CmdlineCheck], [VersionCheck] — or a combinator over other checks.
// [OR] expresses "hardened, or the feature is compiled out entirely"; [AND]
// expresses "this hardening only applies when that prerequisite holds".
// Combinators evaluate their children in a defined order and short-circuit,
// so the reported explanation always names the check that decided the rule.
//
// [KconfigRules] and [CmdlineRules] build the full rule catalog for an
// architecture. Rules carry two descriptive tags: a reason category
// (self_protection, security_policy, cut_attack_surface, harden_userspace)
// and a decision source (defconfig, kspp, clipos, grsec, ...), used for
// reporting only.
//
// # Usage
//
// Detect the target, build the catalog, bind the parsed inputs, evaluate:
//
//	data, err := os.ReadFile(path)
//	...
//	arch, err := hardening.DetectArch(bytes.NewReader(data))
//	...
//	version, err := hardening.DetectVersion(bytes.NewReader(data))
//	...
//	opts, err := hardening.ParseKconfig(bytes.NewReader(data))
//	...
//	checklist := hardening.KconfigRules(arch)
//	checklist.PopulateKconfig(opts)
//	checklist.PopulateVersion(version)
//	checklist.Evaluate()
//	hardening.PrintChecklist(os.Stdout, hardening.ModeNormal, checklist, true)
//
// Malformed input (a contradictory kconfig line, a duplicate option, an
// ambiguous architecture, a missing version banner) fails the run before
// any checklist is produced; evaluation itself cannot fail.
package hardening
