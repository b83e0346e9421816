package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/dice/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// If the document has a mapping under the key name, only that mapping is
// used. Otherwise the whole document is. The YAML structure is converted as
// follows:
//   - Nested mappings are flattened, joining keys with hyphens, so that
//     "log: {level: debug}" sets --log-level
//   - Keys may use underscores in place of hyphens ("log_level")
//   - Numbers are passed to Kong as strings
//   - Sequences and booleans are passed through unchanged
//
// Example config file:
//
//	log:
//	  level: debug
//	  format: text
//	  caller: true
//
// Command-line flags override config file values. A file that fails to
// parse is ignored with a warning.
func resolve(name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn("ignoring invalid config file",
					slog.String("namespace", name),
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		if ns, ok := doc[name].(map[string]any); ok {
			doc = ns
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Keys were normalized to hyphens by flatten.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten stores each leaf of m in r, keyed by its hyphen-joined path.
// Underscores in keys become hyphens to match Kong flag names.
func (r config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")

		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := value.(type) {
		case map[string]any:
			r.flatten(key, v)

		// Kong requires numbers as strings for parsing
		case int64:
			r[key] = strconv.FormatInt(v, 10)

		case uint64:
			r[key] = strconv.FormatUint(v, 10)

		case int:
			r[key] = strconv.Itoa(v)

		case float64:
			r[key] = strconv.FormatFloat(v, 'f', -1, 64)

		default:
			r[key] = v
		}
	}
}
