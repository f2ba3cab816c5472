package hardening

import "slices"

// KconfigRules returns the kconfig hardening checklist for the given
// architecture. Every call returns a freshly allocated checklist: the checks
// carry mutable state and must not be shared across runs.
//
// Cmdline checks don't belong here: a run without a cmdline file must not
// report on boot parameters. See [CmdlineRules].
func KconfigRules(arch Arch) Checklist {
	var l Checklist

	among := func(archs ...Arch) bool {
		return slices.Contains(archs, arch)
	}

	// Sub-checks reused by several rules below. Sharing is deliberate: they
	// are populated once and their result is recomputed identically wherever
	// they appear.
	efiNotSet := NewKconfigCheck("-", "-", "EFI", NotSet)
	ccIsGcc := NewKconfigCheck("-", "-", "CC_IS_GCC", "y")

	modulesNotSet := NewKconfigCheck("cut_attack_surface", "kspp", "MODULES", NotSet)
	devmemNotSet := NewKconfigCheck("cut_attack_surface", "kspp", "DEVMEM", NotSet) // refers to LOCKDOWN
	bpfSyscallNotSet := NewKconfigCheck("cut_attack_surface", "lockdown", "BPF_SYSCALL", NotSet) // refers to LOCKDOWN

	// 'self_protection', 'defconfig'
	l = append(l, NewKconfigCheck("self_protection", "defconfig", "BUG", "y"))
	l = append(l, NewKconfigCheck("self_protection", "defconfig", "SLUB_DEBUG", "y"))
	l = append(l, NewAND(NewKconfigCheck("self_protection", "defconfig", "GCC_PLUGINS", "y"),
		ccIsGcc))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "STACKPROTECTOR", "y"),
		NewKconfigCheck("self_protection", "defconfig", "CC_STACKPROTECTOR", "y"),
		NewKconfigCheck("self_protection", "defconfig", "CC_STACKPROTECTOR_REGULAR", "y"),
		NewKconfigCheck("self_protection", "defconfig", "CC_STACKPROTECTOR_AUTO", "y"),
		NewKconfigCheck("self_protection", "defconfig", "CC_STACKPROTECTOR_STRONG", "y")))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "STACKPROTECTOR_STRONG", "y"),
		NewKconfigCheck("self_protection", "defconfig", "CC_STACKPROTECTOR_STRONG", "y")))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "STRICT_KERNEL_RWX", "y"),
		NewKconfigCheck("self_protection", "defconfig", "DEBUG_RODATA", "y"))) // before v4.11
	l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "STRICT_MODULE_RWX", "y"),
		NewKconfigCheck("self_protection", "defconfig", "DEBUG_SET_MODULE_RONX", "y"),
		modulesNotSet)) // DEBUG_SET_MODULE_RONX was before v4.11
	l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "REFCOUNT_FULL", "y"),
		NewVersionCheck(5, 5))) // REFCOUNT_FULL is enabled by default since v5.5
	l = append(l, NewKconfigCheck("self_protection", "defconfig", "THREAD_INFO_IN_TASK", "y"))
	iommuSupportIsSet := NewKconfigCheck("self_protection", "defconfig", "IOMMU_SUPPORT", "y")
	l = append(l, iommuSupportIsSet) // is needed for mitigating DMA attacks
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "RANDOMIZE_BASE", "y"))
	}
	if among(ArchX86_64, ArchARM64) {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "VMAP_STACK", "y"))
	}
	if among(ArchX86_64, ArchX86_32) {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "MICROCODE", "y")) // is needed for mitigating CPU bugs
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "RETPOLINE", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "X86_SMAP", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "SYN_COOKIES", "y"))
		l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "X86_UMIP", "y"),
			NewKconfigCheck("self_protection", "defconfig", "X86_INTEL_UMIP", "y")))
	}
	if among(ArchARM64, ArchARM) {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "STACKPROTECTOR_PER_TASK", "y"))
	}
	if arch == ArchX86_64 {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "PAGE_TABLE_ISOLATION", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "RANDOMIZE_MEMORY", "y"))
		l = append(l, NewAND(NewKconfigCheck("self_protection", "defconfig", "INTEL_IOMMU", "y"),
			iommuSupportIsSet))
		l = append(l, NewAND(NewKconfigCheck("self_protection", "defconfig", "AMD_IOMMU", "y"),
			iommuSupportIsSet))
	}
	if arch == ArchARM64 {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "ARM64_PAN", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "ARM64_EPAN", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "UNMAP_KERNEL_AT_EL0", "y"))
		l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "HARDEN_EL2_VECTORS", "y"),
			NewAND(NewKconfigCheck("self_protection", "defconfig", "RANDOMIZE_BASE", "y"),
				NewVersionCheck(5, 9)))) // HARDEN_EL2_VECTORS was included in RANDOMIZE_BASE in v5.9
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "RODATA_FULL_DEFAULT_ENABLED", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "ARM64_PTR_AUTH_KERNEL", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "ARM64_BTI_KERNEL", "y"))
		l = append(l, NewOR(NewKconfigCheck("self_protection", "defconfig", "HARDEN_BRANCH_PREDICTOR", "y"),
			NewVersionCheck(5, 10))) // HARDEN_BRANCH_PREDICTOR is enabled by default since v5.10
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "MITIGATE_SPECTRE_BRANCH_HISTORY", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "ARM64_MTE", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "RANDOMIZE_MODULE_REGION_FULL", "y"))
	}
	if arch == ArchARM {
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "CPU_SW_DOMAIN_PAN", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "HARDEN_BRANCH_PREDICTOR", "y"))
		l = append(l, NewKconfigCheck("self_protection", "defconfig", "HARDEN_BRANCH_HISTORY", "y"))
	}

	// 'self_protection', 'kspp'
	l = append(l, NewKconfigCheck("self_protection", "kspp", "BUG_ON_DATA_CORRUPTION", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "DEBUG_WX", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "SCHED_STACK_END_CHECK", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "SLAB_FREELIST_HARDENED", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "SLAB_FREELIST_RANDOM", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "SHUFFLE_PAGE_ALLOCATOR", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "FORTIFY_SOURCE", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "DEBUG_LIST", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "DEBUG_SG", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "DEBUG_CREDENTIALS", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "DEBUG_NOTIFIERS", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "INIT_ON_ALLOC_DEFAULT_ON", "y"))
	l = append(l, NewAND(NewKconfigCheck("self_protection", "kspp", "GCC_PLUGIN_LATENT_ENTROPY", "y"),
		ccIsGcc))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "KFENCE", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "WERROR", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "IOMMU_DEFAULT_DMA_STRICT", "y"))
	l = append(l, NewKconfigCheck("self_protection", "kspp", "IOMMU_DEFAULT_PASSTHROUGH", NotSet)) // true if IOMMU_DEFAULT_DMA_STRICT is set
	l = append(l, NewKconfigCheck("self_protection", "kspp", "ZERO_CALL_USED_REGS", "y"))
	randstructIsSet := NewKconfigCheck("self_protection", "kspp", "GCC_PLUGIN_RANDSTRUCT", "y")
	l = append(l, NewAND(randstructIsSet, ccIsGcc))
	hardenedUsercopyIsSet := NewKconfigCheck("self_protection", "kspp", "HARDENED_USERCOPY", "y")
	l = append(l, hardenedUsercopyIsSet)
	l = append(l, NewAND(NewKconfigCheck("self_protection", "kspp", "HARDENED_USERCOPY_FALLBACK", NotSet),
		hardenedUsercopyIsSet))
	l = append(l, NewAND(NewKconfigCheck("self_protection", "kspp", "HARDENED_USERCOPY_PAGESPAN", NotSet),
		hardenedUsercopyIsSet))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "MODULE_SIG", "y"),
		modulesNotSet))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "MODULE_SIG_ALL", "y"),
		modulesNotSet))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "MODULE_SIG_SHA512", "y"),
		modulesNotSet))
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "MODULE_SIG_FORCE", "y"),
		modulesNotSet)) // refers to LOCKDOWN
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "INIT_STACK_ALL_ZERO", "y"),
		NewKconfigCheck("self_protection", "kspp", "GCC_PLUGIN_STRUCTLEAK_BYREF_ALL", "y")))
	// INIT_ON_FREE_DEFAULT_ON was added in v5.3; PAGE_POISONING_ZERO was
	// removed in v5.11, where PAGE_POISONING started checking the 0xAA
	// pattern on allocation unconditionally.
	l = append(l, NewOR(NewKconfigCheck("self_protection", "kspp", "INIT_ON_FREE_DEFAULT_ON", "y"),
		NewKconfigCheck("self_protection", "kspp", "PAGE_POISONING_ZERO", "y")))
	var stackleakIsSet *KconfigCheck
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		stackleakIsSet = NewKconfigCheck("self_protection", "kspp", "GCC_PLUGIN_STACKLEAK", "y")
		l = append(l, NewAND(stackleakIsSet, ccIsGcc))
		l = append(l, NewKconfigCheck("self_protection", "kspp", "RANDOMIZE_KSTACK_OFFSET_DEFAULT", "y"))
	}
	if among(ArchX86_64, ArchX86_32) {
		l = append(l, NewKconfigCheck("self_protection", "kspp", "SCHED_CORE", "y"))
		l = append(l, NewKconfigCheck("self_protection", "kspp", "DEFAULT_MMAP_MIN_ADDR", "65536"))
	}
	if among(ArchARM64, ArchARM) {
		l = append(l, NewKconfigCheck("self_protection", "kspp", "DEFAULT_MMAP_MIN_ADDR", "32768"))
		l = append(l, NewKconfigCheck("self_protection", "kspp", "SYN_COOKIES", "y"))
	}
	if arch == ArchARM64 {
		l = append(l, NewKconfigCheck("self_protection", "kspp", "ARM64_SW_TTBR0_PAN", "y"))
	}
	if arch == ArchX86_32 {
		l = append(l, NewKconfigCheck("self_protection", "kspp", "PAGE_TABLE_ISOLATION", "y"))
		l = append(l, NewKconfigCheck("self_protection", "kspp", "HIGHMEM64G", "y"))
		l = append(l, NewKconfigCheck("self_protection", "kspp", "X86_PAE", "y"))
	}

	// 'self_protection', 'maintainer'
	ubsanBoundsIsSet := NewKconfigCheck("self_protection", "maintainer", "UBSAN_BOUNDS", "y") // only array index bounds checking
	l = append(l, ubsanBoundsIsSet)
	if among(ArchX86_64, ArchARM64, ArchX86_32) { // ARCH_HAS_UBSAN_SANITIZE_ALL is not enabled for ARM
		l = append(l, NewAND(NewKconfigCheck("self_protection", "maintainer", "UBSAN_SANITIZE_ALL", "y"),
			ubsanBoundsIsSet))
	}
	l = append(l, NewAND(NewKconfigCheck("self_protection", "maintainer", "UBSAN_TRAP", "y"),
		ubsanBoundsIsSet))

	// 'self_protection', 'clipos'
	l = append(l, NewKconfigCheck("self_protection", "clipos", "DEBUG_VIRTUAL", "y"))
	l = append(l, NewKconfigCheck("self_protection", "clipos", "STATIC_USERMODEHELPER", "y")) // needs userspace support
	l = append(l, NewOR(NewKconfigCheck("self_protection", "clipos", "EFI_DISABLE_PCI_DMA", "y"),
		efiNotSet))
	l = append(l, NewKconfigCheck("self_protection", "clipos", "SLAB_MERGE_DEFAULT", NotSet))
	l = append(l, NewKconfigCheck("self_protection", "clipos", "RANDOM_TRUST_BOOTLOADER", NotSet))
	l = append(l, NewKconfigCheck("self_protection", "clipos", "RANDOM_TRUST_CPU", NotSet))
	l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "GCC_PLUGIN_RANDSTRUCT_PERFORMANCE", NotSet),
		randstructIsSet,
		ccIsGcc))
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "STACKLEAK_METRICS", NotSet),
			stackleakIsSet,
			ccIsGcc))
		l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "STACKLEAK_RUNTIME_DISABLE", NotSet),
			stackleakIsSet,
			ccIsGcc))
	}
	if among(ArchX86_64, ArchX86_32) {
		l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "INTEL_IOMMU_DEFAULT_ON", "y"),
			iommuSupportIsSet))
	}
	if arch == ArchX86_64 {
		l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "INTEL_IOMMU_SVM", "y"),
			iommuSupportIsSet))
	}
	if arch == ArchX86_32 {
		l = append(l, NewAND(NewKconfigCheck("self_protection", "clipos", "INTEL_IOMMU", "y"),
			iommuSupportIsSet))
	}

	// 'self_protection', 'my'
	l = append(l, NewOR(NewKconfigCheck("self_protection", "my", "RESET_ATTACK_MITIGATION", "y"),
		efiNotSet)) // needs userspace support (systemd)
	if arch == ArchX86_64 {
		l = append(l, NewKconfigCheck("self_protection", "my", "SLS", "y")) // vs CVE-2021-26341 in Straight-Line-Speculation
		l = append(l, NewAND(NewKconfigCheck("self_protection", "my", "AMD_IOMMU_V2", "y"),
			iommuSupportIsSet))
	}
	if arch == ArchARM64 {
		l = append(l, NewKconfigCheck("self_protection", "my", "SHADOW_CALL_STACK", "y")) // depends on clang
		l = append(l, NewKconfigCheck("self_protection", "my", "KASAN_HW_TAGS", "y"))
		cfiClangIsSet := NewKconfigCheck("self_protection", "my", "CFI_CLANG", "y")
		l = append(l, cfiClangIsSet)
		l = append(l, NewAND(NewKconfigCheck("self_protection", "my", "CFI_PERMISSIVE", NotSet),
			cfiClangIsSet))
	}

	// 'security_policy'
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewKconfigCheck("security_policy", "defconfig", "SECURITY", "y")) // and choose your favourite LSM
	}
	if arch == ArchARM {
		l = append(l, NewKconfigCheck("security_policy", "kspp", "SECURITY", "y")) // and choose your favourite LSM
	}
	l = append(l, NewKconfigCheck("security_policy", "kspp", "SECURITY_YAMA", "y"))
	l = append(l, NewKconfigCheck("security_policy", "kspp", "SECURITY_SELINUX_DISABLE", NotSet))
	l = append(l, NewKconfigCheck("security_policy", "clipos", "SECURITY_LOCKDOWN_LSM", "y"))
	l = append(l, NewKconfigCheck("security_policy", "clipos", "SECURITY_LOCKDOWN_LSM_EARLY", "y"))
	l = append(l, NewKconfigCheck("security_policy", "clipos", "LOCK_DOWN_KERNEL_FORCE_CONFIDENTIALITY", "y"))
	l = append(l, NewKconfigCheck("security_policy", "my", "SECURITY_WRITABLE_HOOKS", NotSet)) // refers to SECURITY_SELINUX_DISABLE
	l = append(l, NewKconfigCheck("security_policy", "my", "SECURITY_SAFESETID", "y"))
	loadpinIsSet := NewKconfigCheck("security_policy", "my", "SECURITY_LOADPIN", "y")
	l = append(l, loadpinIsSet) // needs userspace support
	l = append(l, NewAND(NewKconfigCheck("security_policy", "my", "SECURITY_LOADPIN_ENFORCE", "y"),
		loadpinIsSet))

	// 'cut_attack_surface', 'defconfig'
	l = append(l, NewOR(NewKconfigCheck("cut_attack_surface", "defconfig", "BPF_UNPRIV_DEFAULT_OFF", "y"),
		bpfSyscallNotSet)) // see unprivileged_bpf_disabled
	l = append(l, NewKconfigCheck("cut_attack_surface", "defconfig", "SECCOMP", "y"))
	l = append(l, NewKconfigCheck("cut_attack_surface", "defconfig", "SECCOMP_FILTER", "y"))
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewOR(NewKconfigCheck("cut_attack_surface", "defconfig", "STRICT_DEVMEM", "y"),
			devmemNotSet)) // refers to LOCKDOWN
	}

	// 'cut_attack_surface', 'kspp'
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "SECURITY_DMESG_RESTRICT", "y"))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "ACPI_CUSTOM_METHOD", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "COMPAT_BRK", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "DEVKMEM", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "COMPAT_VDSO", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "BINFMT_MISC", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "INET_DIAG", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "KEXEC", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "PROC_KCORE", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "LEGACY_PTYS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "HIBERNATION", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "IA32_EMULATION", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "X86_X32", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "MODIFY_LDT_SYSCALL", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "OABI_COMPAT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "X86_MSR", NotSet)) // refers to LOCKDOWN
	l = append(l, modulesNotSet)
	l = append(l, devmemNotSet)
	l = append(l, NewOR(NewKconfigCheck("cut_attack_surface", "kspp", "IO_STRICT_DEVMEM", "y"),
		devmemNotSet)) // refers to LOCKDOWN
	if arch == ArchARM {
		l = append(l, NewOR(NewKconfigCheck("cut_attack_surface", "kspp", "STRICT_DEVMEM", "y"),
			devmemNotSet)) // refers to LOCKDOWN
	}
	if arch == ArchX86_64 {
		l = append(l, NewKconfigCheck("cut_attack_surface", "kspp", "LEGACY_VSYSCALL_NONE", "y")) // 'vsyscall=none'
	}

	// 'cut_attack_surface', 'grsec'
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "ZSMALLOC_STAT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "PAGE_OWNER", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "DEBUG_KMEMLEAK", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "BINFMT_AOUT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "KPROBE_EVENTS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "UPROBE_EVENTS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "GENERIC_TRACER", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "FUNCTION_TRACER", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "STACK_TRACER", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "HIST_TRIGGERS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "BLK_DEV_IO_TRACE", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "PROC_VMCORE", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "PROC_PAGE_MONITOR", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "USELIB", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "CHECKPOINT_RESTORE", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "USERFAULTFD", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "HWPOISON_INJECT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "MEM_SOFT_DIRTY", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "DEVPORT", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "DEBUG_FS", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "NOTIFIER_ERROR_INJECTION", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "FAIL_FUTEX", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "PUNIT_ATOM_DEBUG", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "ACPI_CONFIGFS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "EDAC_DEBUG", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "DRM_I915_DEBUG", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "BCACHE_CLOSURES_DEBUG", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "DVB_C8SECTPFE", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "MTD_SLRAM", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "MTD_PHRAM", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "IO_URING", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "KCMP", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "RSEQ", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "LATENCYTOP", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "KCOV", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "PROVIDE_OHCI1394_DMA_INIT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "grsec", "SUNRPC_DEBUG", NotSet))
	l = append(l, NewAND(NewKconfigCheck("cut_attack_surface", "grsec", "PTDUMP_DEBUGFS", NotSet),
		NewKconfigCheck("cut_attack_surface", "grsec", "X86_PTDUMP", NotSet)))

	// 'cut_attack_surface', 'maintainer'
	l = append(l, NewKconfigCheck("cut_attack_surface", "maintainer", "DRM_LEGACY", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "maintainer", "FB", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "maintainer", "VT", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "maintainer", "BLK_DEV_FD", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "maintainer", "BLK_DEV_FD_RAWCMD", NotSet))

	// 'cut_attack_surface', 'grapheneos'
	l = append(l, NewKconfigCheck("cut_attack_surface", "grapheneos", "AIO", NotSet))

	// 'cut_attack_surface', 'clipos'
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "STAGING", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "KSM", NotSet)) // to prevent FLUSH+RELOAD attack
	// IKCONFIG is deliberately not here: it is needed for checking the
	// running kernel's config.
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "KALLSYMS", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "X86_VSYSCALL_EMULATION", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "MAGIC_SYSRQ", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "KEXEC_FILE", NotSet)) // refers to LOCKDOWN (permissive)
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "USER_NS", NotSet)) // user.max_user_namespaces=0
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "X86_CPUID", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "X86_IOPL_IOPERM", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "ACPI_TABLE_UPGRADE", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "EFI_CUSTOM_SSDT_OVERLAYS", NotSet))
	l = append(l, NewAND(NewKconfigCheck("cut_attack_surface", "clipos", "LDISC_AUTOLOAD", NotSet),
		NewKconfigPresence("cut_attack_surface", "clipos", "LDISC_AUTOLOAD")))
	if among(ArchX86_64, ArchX86_32) {
		l = append(l, NewKconfigCheck("cut_attack_surface", "clipos", "X86_INTEL_TSX_MODE_OFF", "y")) // tsx=off
	}

	// 'cut_attack_surface', 'lockdown'
	l = append(l, bpfSyscallNotSet) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "lockdown", "EFI_TEST", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "lockdown", "MMIOTRACE_TEST", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "lockdown", "KPROBES", NotSet)) // refers to LOCKDOWN

	// 'cut_attack_surface', 'my'
	l = append(l, NewOR(NewKconfigCheck("cut_attack_surface", "my", "TRIM_UNUSED_KSYMS", "y"),
		modulesNotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "MMIOTRACE", NotSet)) // refers to LOCKDOWN (permissive)
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "LIVEPATCH", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "IP_DCCP", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "IP_SCTP", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "FTRACE", NotSet)) // refers to LOCKDOWN
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "VIDEO_VIVID", NotSet))
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "INPUT_EVBUG", NotSet)) // can be used as a keylogger
	l = append(l, NewKconfigCheck("cut_attack_surface", "my", "KGDB", NotSet))

	// 'harden_userspace'
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewKconfigCheck("harden_userspace", "defconfig", "INTEGRITY", "y"))
	}
	if arch == ArchARM {
		l = append(l, NewKconfigCheck("harden_userspace", "my", "INTEGRITY", "y"))
	}
	if arch == ArchARM64 {
		l = append(l, NewKconfigCheck("harden_userspace", "defconfig", "ARM64_PTR_AUTH", "y"))
		l = append(l, NewKconfigCheck("harden_userspace", "defconfig", "ARM64_BTI", "y"))
	}
	if among(ArchARM, ArchX86_32) {
		l = append(l, NewKconfigCheck("harden_userspace", "defconfig", "VMSPLIT_3G", "y"))
	}
	if among(ArchX86_64, ArchARM64) {
		l = append(l, NewKconfigCheck("harden_userspace", "clipos", "ARCH_MMAP_RND_BITS", "32"))
	}
	if among(ArchX86_32, ArchARM) {
		l = append(l, NewKconfigCheck("harden_userspace", "my", "ARCH_MMAP_RND_BITS", "16"))
	}

	return l
}

// CmdlineRules returns the boot command line hardening checklist for the
// given architecture.
//
// A common pattern below checks a 'param_x' cmdline parameter that overrides
// a PARAM_X_DEFAULT kconfig option:
//
//	OR(CmdlineCheck(reason, decision, "param_x", "1"),
//	   AND(KconfigCheck(reason, decision, "PARAM_X_DEFAULT_ON", "y"),
//	       CmdlineCheck(reason, decision, "param_x", NotSet)))
//
// The kconfig options or minimal kernel versions required by the cmdline
// parameters themselves are not checked: that would make the rules very
// complex without giving a guarantee anyway.
func CmdlineRules(arch Arch) Checklist {
	var l Checklist

	among := func(archs ...Arch) bool {
		return slices.Contains(archs, arch)
	}

	// 'self_protection', 'defconfig'
	if arch == ArchARM64 {
		l = append(l, NewOR(NewCmdlineCheck("self_protection", "defconfig", "rodata", "full"),
			NewAND(NewKconfigCheck("self_protection", "defconfig", "RODATA_FULL_DEFAULT_ENABLED", "y"),
				NewCmdlineCheck("self_protection", "defconfig", "rodata", NotSet))))
	} else {
		l = append(l, NewOR(NewCmdlineCheck("self_protection", "defconfig", "rodata", "1"),
			NewCmdlineCheck("self_protection", "defconfig", "rodata", NotSet)))
	}

	// 'self_protection', 'kspp'
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "init_on_alloc", "1"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "INIT_ON_ALLOC_DEFAULT_ON", "y"),
			NewCmdlineCheck("self_protection", "kspp", "init_on_alloc", NotSet))))
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "init_on_free", "1"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "INIT_ON_FREE_DEFAULT_ON", "y"),
			NewCmdlineCheck("self_protection", "kspp", "init_on_free", NotSet)),
		NewAND(NewCmdlineCheck("self_protection", "kspp", "page_poison", "1"),
			NewKconfigCheck("self_protection", "kspp", "PAGE_POISONING_ZERO", "y"),
			NewCmdlineCheck("self_protection", "kspp", "slub_debug", "P"))))
	l = append(l, NewOR(NewCmdlinePresence("self_protection", "kspp", "slab_nomerge"),
		NewAND(NewKconfigCheck("self_protection", "clipos", "SLAB_MERGE_DEFAULT", NotSet),
			NewCmdlineCheck("self_protection", "kspp", "slab_merge", NotSet))))
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "iommu.strict", "1"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "IOMMU_DEFAULT_DMA_STRICT", "y"),
			NewCmdlineCheck("self_protection", "kspp", "iommu.strict", NotSet))))
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "iommu.passthrough", "0"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "IOMMU_DEFAULT_PASSTHROUGH", NotSet),
			NewCmdlineCheck("self_protection", "kspp", "iommu.passthrough", NotSet))))
	// The cmdline checks compatible with the kconfig recommendations of the
	// KSPP project...
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "hardened_usercopy", "1"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "HARDENED_USERCOPY", "y"),
			NewCmdlineCheck("self_protection", "kspp", "hardened_usercopy", NotSet))))
	l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "slab_common.usercopy_fallback", "0"),
		NewAND(NewKconfigCheck("self_protection", "kspp", "HARDENED_USERCOPY_FALLBACK", NotSet),
			NewCmdlineCheck("self_protection", "kspp", "slab_common.usercopy_fallback", NotSet)))) // ... the end
	if among(ArchX86_64, ArchARM64, ArchX86_32) {
		l = append(l, NewOR(NewCmdlineCheck("self_protection", "kspp", "randomize_kstack_offset", "1"),
			NewAND(NewKconfigCheck("self_protection", "kspp", "RANDOMIZE_KSTACK_OFFSET_DEFAULT", "y"),
				NewCmdlineCheck("self_protection", "kspp", "randomize_kstack_offset", NotSet))))
	}
	if among(ArchX86_64, ArchX86_32) {
		l = append(l, NewCmdlineCheck("self_protection", "kspp", "pti", "on"))
	}

	// 'self_protection', 'clipos'
	l = append(l, NewCmdlineCheck("self_protection", "clipos", "page_alloc.shuffle", "1"))

	// 'cut_attack_surface', 'kspp'
	if arch == ArchX86_64 {
		l = append(l, NewOR(NewCmdlineCheck("cut_attack_surface", "kspp", "vsyscall", "none"),
			NewAND(NewKconfigCheck("cut_attack_surface", "kspp", "LEGACY_VSYSCALL_NONE", "y"),
				NewCmdlineCheck("cut_attack_surface", "kspp", "vsyscall", NotSet))))
	}

	// 'cut_attack_surface', 'grsec'
	l = append(l, NewOR(NewCmdlineCheck("cut_attack_surface", "grsec", "debugfs", "off"),
		NewKconfigCheck("cut_attack_surface", "grsec", "DEBUG_FS", NotSet)))

	return l
}
