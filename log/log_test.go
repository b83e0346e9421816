package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelError))

	logger.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("info message logged when level is error: %s", buf.String())
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_Trace_RendersLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace))

	logger.Trace("tracing", slog.Int("n", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	if record["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", record["level"])
	}

	if record["n"] != float64(3) {
		t.Errorf("n = %v, want 3", record["n"])
	}
}

func TestLogger_WithFormat_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))

	logger.Info("hello", slog.String("notation", "2d20kH+4"))

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("expected text output, got %q", out)
	}

	if strings.Contains(out, "time=") {
		t.Errorf("expected timestamp disabled, got %q", out)
	}

	if !strings.Contains(out, "notation=2d20kH+4") {
		t.Errorf("missing attribute in %q", out)
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true))

	logger.Info("where")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected source to name this file, got %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf).With(slog.String("component", "lang"))

	logger.Info("compiled")

	if !strings.Contains(buf.String(), `"component":"lang"`) {
		t.Errorf("expected attribute, got %s", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Info("discarded")
	logger.TraceContext(context.Background(), "discarded")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger should not be enabled")
	}

	if got := logger.With(slog.Int("k", 1)); got.Logger != nil {
		t.Error("With on zero logger should stay zero")
	}

	var buf bytes.Buffer

	wrapped := logger.Wrap(WithOutput(&buf))
	wrapped.Info("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("wrapped zero logger did not write: %q", buf.String())
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf bytes.Buffer

	var mu sync.Mutex

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("expected 16 lines, got %d", got)
	}
}

func TestPackage_ConfigUpdatesDefault(t *testing.T) {
	original := Default()

	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("expected level %q in %s", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("expected attribute in %s", out)
			}
		})
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
