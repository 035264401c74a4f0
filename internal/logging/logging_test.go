package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebug_DisabledInProduction(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.DebugLevel)

	appLogger := &AppLogger{
		logger: logger,
		debug:  false, // Production mode
	}

	appLogger.Debug("debug message that should not appear")

	output := buf.String()
	if strings.Contains(output, "debug message that should not appear") {
		t.Errorf("Expected debug message to be suppressed in production mode, got: %s", output)
	}
}

func TestNewAppLoggerTo_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAppLoggerTo(&buf, false)

	logger.Infof("Loaded command: %s", "greet")
	logger.Debug("hidden detail")

	output := buf.String()
	if !strings.Contains(output, "Loaded command: greet") {
		t.Errorf("Expected diagnostic line in output, got: %s", output)
	}
	if !strings.Contains(output, Prefix) {
		t.Errorf("Expected prefix %q in output, got: %s", Prefix, output)
	}
	if strings.Contains(output, "hidden detail") {
		t.Errorf("Expected debug output to be suppressed, got: %s", output)
	}
}

func TestNewAppLoggerTo_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAppLoggerTo(&buf, true)

	logger.Debug("visible detail", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "Debug logging enabled") {
		t.Errorf("Expected debug banner, got: %s", output)
	}
	if !strings.Contains(output, "visible detail") {
		t.Errorf("Expected debug message, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Expected structured key/value, got: %s", output)
	}
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		wantErr    bool
		wantInfo   bool
		wantDebug  bool
		wantWarned bool
	}{
		{name: "empty keeps info", level: "", wantInfo: true, wantWarned: true},
		{name: "debug", level: "debug", wantInfo: true, wantDebug: true, wantWarned: true},
		{name: "upper case warn", level: "WARN", wantWarned: true},
		{name: "error hides warn", level: "error"},
		{name: "invalid", level: "verbose", wantErr: true, wantInfo: true, wantWarned: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewAppLoggerTo(&buf, false)

			err := logger.SetLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}

			logger.Info("info line")
			logger.Debug("debug line")
			logger.Warn("warn line")

			output := buf.String()
			if got := strings.Contains(output, "info line"); got != tt.wantInfo {
				t.Errorf("info visible = %v, want %v (output: %s)", got, tt.wantInfo, output)
			}
			if got := strings.Contains(output, "debug line"); got != tt.wantDebug {
				t.Errorf("debug visible = %v, want %v (output: %s)", got, tt.wantDebug, output)
			}
			if got := strings.Contains(output, "warn line"); got != tt.wantWarned {
				t.Errorf("warn visible = %v, want %v (output: %s)", got, tt.wantWarned, output)
			}
		})
	}
}

func TestDebugObject(t *testing.T) {
	logger, buf := NewTestLogger()

	testObj := struct {
		Name  string
		Value int
	}{
		Name:  "test",
		Value: 42,
	}

	logger.DebugObject("test_object", testObj)

	output := buf.String()
	if !strings.Contains(output, "Object dump") {
		t.Errorf("Expected log output to contain 'Object dump', got: %s", output)
	}
	if !strings.Contains(output, "test_object") {
		t.Errorf("Expected log output to contain object name, got: %s", output)
	}
	if !strings.Contains(output, "42") {
		t.Errorf("Expected log output to contain object data, got: %s", output)
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	start := time.Now()
	time.Sleep(1 * time.Millisecond) // Small delay for measurable duration
	logger.LogPerformance("tools/list", start)

	output := buf.String()
	if !strings.Contains(output, "Performance") {
		t.Errorf("Expected log output to contain 'Performance', got: %s", output)
	}
	if !strings.Contains(output, "tools/list") {
		t.Errorf("Expected log output to contain operation name, got: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("Expected log output to contain duration, got: %s", output)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// Reset the singleton for testing
	defaultLogger = nil
	once = sync.Once{}

	os.Setenv("DEBUG", "1")
	defer os.Unsetenv("DEBUG")

	Debug("package level debug")

	if !GetDefault().debug {
		t.Error("Expected default logger to honour DEBUG")
	}
}

func TestGetDefault_Singleton(t *testing.T) {
	// Reset the singleton for testing
	defaultLogger = nil
	once = sync.Once{}

	logger1 := GetDefault()
	logger2 := GetDefault()

	if logger1 != logger2 {
		t.Error("Expected GetDefault() to return the same instance (singleton)")
	}
}

// Benchmark tests
func BenchmarkInfo(b *testing.B) {
	logger, _ := NewTestLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}

func BenchmarkDebug(b *testing.B) {
	logger, _ := NewTestLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("benchmark debug message", "iteration", i)
	}
}
