package poller

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"taskwatch/internal/domain/entity"
)

type Protocol string

const (
	// ProtocolMsgs sends msgs=<json {task_id: {msg_id, task_id, checksum}}>. Responses are keyed by msg id.
	ProtocolMsgs Protocol = "msgs"
	// ProtocolFlat sends one task_id=checksum pair per task. Responses are keyed by task id.
	ProtocolFlat Protocol = "flat"
)

const (
	DefaultInterval = 800 * time.Millisecond
	MessagesPath    = "/async_actions/messages/get/"
	TasksByIDsPath  = "/async_actions/tasks_by_ids/"
)

var ErrInvalidConfig = errors.New("invalid poller config")

// Config is fixed for the lifetime of a Poller.
type Config struct {
	Interval time.Duration
	// BaseURL overrides Origin+Path when set.
	BaseURL  string
	Path     string
	Protocol Protocol

	Markers      entity.MarkerSet
	RowClass     string
	TaskIDAttr   string
	ChecksumAttr string

	FailureMarker   string
	FailureClass    string
	SeverityClasses []string
}

func DefaultConfig() Config {
	return Config{
		Interval:        DefaultInterval,
		Protocol:        ProtocolMsgs,
		Markers:         entity.DefaultMarkerSet(),
		RowClass:        entity.DefaultRowClass,
		TaskIDAttr:      entity.DefaultTaskIDAttr,
		ChecksumAttr:    entity.DefaultChecksumAttr,
		FailureMarker:   entity.MarkerFailed,
		FailureClass:    "error",
		SeverityClasses: []string{"info", "success", "debug", "warning"},
	}
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	}
	if c.Protocol != ProtocolMsgs && c.Protocol != ProtocolFlat {
		return fmt.Errorf("%w: unknown protocol %q", ErrInvalidConfig, c.Protocol)
	}
	if c.Markers.Len() == 0 {
		return fmt.Errorf("%w: marker set is empty", ErrInvalidConfig)
	}
	if c.TaskIDAttr == "" || c.ChecksumAttr == "" {
		return fmt.Errorf("%w: task id and checksum attributes are required", ErrInvalidConfig)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base url %q is not absolute", ErrInvalidConfig, c.BaseURL)
		}
	}
	return nil
}

func (c Config) selector() entity.Selector {
	return entity.Selector{
		RowClass:     c.RowClass,
		Markers:      c.Markers,
		TaskIDAttr:   c.TaskIDAttr,
		ChecksumAttr: c.ChecksumAttr,
	}
}

func (c Config) clone() Config {
	c.SeverityClasses = append([]string(nil), c.SeverityClasses...)
	return c
}

// Endpoint resolves the poll URL without query. The origin is only used when BaseURL is empty.
func (c Config) Endpoint(origin string) (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	if origin == "" {
		return "", fmt.Errorf("%w: no base url and no document origin", ErrInvalidConfig)
	}
	path := c.Path
	if path == "" {
		path = MessagesPath
		if c.Protocol == ProtocolFlat {
			path = TasksByIDsPath
		}
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(path, "/"), nil
}
