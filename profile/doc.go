// Package profile provides optional runtime profiling for the dice command.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile]. Without the tag every [Profiler] is a no-op and
// [Modes] is empty.
//
//	go build -tags pprof .
//	dice --pprof-mode=cpu roll 4d6dL 3 5 2 6
//	go tool pprof -http=: ~/.cache/dice/pprof/cpu.pprof
//
// With the tag, the package also registers the [net/http/pprof] handlers
// on [net/http.DefaultServeMux].
package profile
