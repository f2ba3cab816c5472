package hardening

// Checklist is an ordered list of top-level checks. The order is the order
// rules are reported in; every check is evaluated independently.
//
// A checklist goes through a two-phase protocol: bind the parsed inputs with
// the Populate methods (one pass per input kind, in any order), then call
// [Checklist.Evaluate] once. Population passes only touch checks of their
// own kind, so running a pass for an input that was never parsed is a no-op.
type Checklist []Check

// eachSimple visits every simple check in the list, recursing through
// combinators.
func (cl Checklist) eachSimple(visit func(Check)) {
	var walk func(c Check)
	walk = func(c Check) {
		switch cc := c.(type) {
		case *OR:
			for _, child := range cc.children {
				walk(child)
			}
		case *AND:
			for _, child := range cc.children {
				walk(child)
			}
		default:
			visit(c)
		}
	}
	for _, c := range cl {
		walk(c)
	}
}

// PopulateKconfig binds parsed kconfig options into every kconfig check.
func (cl Checklist) PopulateKconfig(opts *ParsedOptions) {
	cl.eachSimple(func(c Check) {
		if kc, ok := c.(*KconfigCheck); ok {
			kc.populate(opts)
		}
	})
}

// PopulateCmdline binds parsed boot parameters into every cmdline check.
func (cl Checklist) PopulateCmdline(opts *ParsedOptions) {
	cl.eachSimple(func(c Check) {
		if cc, ok := c.(*CmdlineCheck); ok {
			cc.populate(opts)
		}
	})
}

// PopulateVersion binds the detected kernel version into every version check.
func (cl Checklist) PopulateVersion(version KernelVersion) {
	cl.eachSimple(func(c Check) {
		if vc, ok := c.(*VersionCheck); ok {
			vc.populate(version)
		}
	})
}

// Evaluate runs every top-level check's decision procedure. Combinators
// evaluate their children on demand, honoring their short-circuit order.
func (cl Checklist) Evaluate() {
	for _, c := range cl {
		c.evaluate()
	}
}

// KnownOptions returns every option name the checklist refers to, including
// those nested inside combinators. The caller cross-checks it against the
// parsed input to report options no check covers.
func (cl Checklist) KnownOptions() []string {
	var names []string
	cl.eachSimple(func(c Check) {
		switch cc := c.(type) {
		case *KconfigCheck:
			names = append(names, cc.Name())
		case *CmdlineCheck:
			names = append(names, cc.Name())
		}
	})
	return names
}

// Tally counts passing and failing top-level checks. Only meaningful after
// evaluation.
func (cl Checklist) Tally() (ok, fail int) {
	for _, c := range cl {
		if c.Result().OK() {
			ok++
		} else {
			fail++
		}
	}
	return ok, fail
}
