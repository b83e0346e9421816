// Package cli contains the command line interface for dice.
//
// # Usage
//
// The default command evaluates a notation against dice that have already
// been rolled:
//
//	dice 2d20kH+4 8 15
//	19
//
// Other commands inspect notations without evaluating them:
//
//	dice list 2d20kH+4        # d20 d20
//	dice compile -o yaml d6+1
//	dice check -f rolls.txt
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (e.g. ~/.config/dice/config.yaml). The file is YAML; nested
// mappings are flattened with hyphens, so both of these set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// "dice init" writes the current global flag values to that file.
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dice .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/dice/pprof)
package cli
