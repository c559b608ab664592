package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type BrowserSettings struct {
	Headless   bool   `yaml:"headless"`
	NoSandbox  bool   `yaml:"no_sandbox"`
	ControlURL string `yaml:"control_url"`
}

type LogSettings struct {
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Settings is the file/env view of the configuration. Precedence: defaults < YAML < env.
type Settings struct {
	Interval        time.Duration     `yaml:"interval"`
	BaseURL         string            `yaml:"base_url"`
	Path            string            `yaml:"path"`
	Protocol        string            `yaml:"protocol"`
	Markers         []string          `yaml:"markers"`
	RowClass        string            `yaml:"row_class"`
	TaskIDAttr      string            `yaml:"task_id_attr"`
	ChecksumAttr    string            `yaml:"checksum_attr"`
	FailureMarker   string            `yaml:"failure_marker"`
	FailureClass    string            `yaml:"failure_class"`
	SeverityClasses []string          `yaml:"severity_classes"`
	RequestTimeout  time.Duration     `yaml:"request_timeout"`
	Headers         map[string]string `yaml:"headers"`
	Browser         BrowserSettings   `yaml:"browser"`
	Log             LogSettings       `yaml:"log"`
}

func DefaultSettings() Settings {
	return Settings{
		Interval:        800 * time.Millisecond,
		Protocol:        "msgs",
		Markers:         []string{"task-waiting", "task-running"},
		RowClass:        "item-message",
		TaskIDAttr:      "data-task_id",
		ChecksumAttr:    "data-checksum",
		FailureMarker:   "task-failed",
		FailureClass:    "error",
		SeverityClasses: []string{"info", "success", "debug", "warning"},
		Browser: BrowserSettings{
			Headless: true,
		},
		Log: LogSettings{
			Dir:   "log",
			Level: "info",
		},
	}
}

// LoadSettings reads path (optional, empty skips it) and applies TASKWATCH_* overrides.
func LoadSettings(path string, e *EnvService) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if e != nil {
		e.apply(&s)
	}
	if s.Interval <= 0 {
		return s, errors.New("interval must be positive")
	}
	return s, nil
}

func (e *EnvService) apply(s *Settings) {
	s.Interval = e.GetDuration("TASKWATCH_INTERVAL", s.Interval)
	s.RequestTimeout = e.GetDuration("TASKWATCH_TIMEOUT", s.RequestTimeout)
	s.Markers = e.GetList("TASKWATCH_MARKERS", s.Markers)
	s.Browser.Headless = e.GetBool("BROWSER_HEADLESS", s.Browser.Headless)
	s.Log.Console = e.GetBool("TASKWATCH_LOG_CONSOLE", s.Log.Console)

	for key, dst := range map[string]*string{
		"TASKWATCH_BASE_URL":    &s.BaseURL,
		"TASKWATCH_PATH":        &s.Path,
		"TASKWATCH_PROTOCOL":    &s.Protocol,
		"TASKWATCH_ROW_CLASS":   &s.RowClass,
		"TASKWATCH_LOG_DIR":     &s.Log.Dir,
		"TASKWATCH_LOG_LEVEL":   &s.Log.Level,
		"BROWSER_CONTROL_URL":   &s.Browser.ControlURL,
		"TASKWATCH_FAIL_MARKER": &s.FailureMarker,
	} {
		if val, ok := e.Lookup(key); ok {
			*dst = val
		}
	}
}
