package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory
	Quiet bool   // suppress the profiler's own log output
}

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start begins profiling and returns the means to stop it.
//
// If the pprof build tag or p.Mode is unset, or p.Mode is not one of
// [Modes], Start returns a no-op Stopper. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
