//go:build pprof

package profile

import "github.com/pkg/profile"

// option appends profile.Profile settings derived from a Profiler.
type option func([]func(*profile.Profile), Profiler) []func(*profile.Profile)

// settings applies each option in order.
func settings(p Profiler, opts ...option) []func(*profile.Profile) {
	var s []func(*profile.Profile)

	for _, opt := range opts {
		s = opt(s, p)
	}

	return s
}

func withMode(s []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if fn, ok := mode[p.Mode]; ok {
		s = append(s, fn)
	}

	return s
}

func withPath(s []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if p.Path != "" {
		s = append(s, profile.ProfilePath(p.Path))
	}

	return s
}

func withQuiet(s []func(*profile.Profile), p Profiler) []func(*profile.Profile) {
	if p.Quiet {
		s = append(s, profile.Quiet)
	}

	return s
}
