package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ServiceLogger writes leveled, optionally JSON-structured log lines.
type ServiceLogger struct {
	logger     *log.Logger
	level      LogLevel
	service    string
	structured bool
}

func (s *ServiceLogger) Info(msg string, keysAndValues ...interface{}) {
	if s.level <= LogLevelInfo {
		s.log(LogLevelInfo, msg, keysAndValues...)
	}
}

func (s *ServiceLogger) Error(msg string, keysAndValues ...interface{}) {
	s.log(LogLevelError, msg, keysAndValues...)
}

func (s *ServiceLogger) Debug(msg string, keysAndValues ...interface{}) {
	if s.level <= LogLevelDebug {
		s.log(LogLevelDebug, msg, keysAndValues...)
	}
}

func (s *ServiceLogger) Warn(msg string, keysAndValues ...interface{}) {
	if s.level <= LogLevelWarn {
		s.log(LogLevelWarn, msg, keysAndValues...)
	}
}

func (s *ServiceLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if s.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   s.service,
			"message":   msg,
		}
		if len(keysAndValues) > 1 {
			fields := make(map[string]interface{})
			for i := 0; i < len(keysAndValues)-1; i += 2 {
				if key, ok := keysAndValues[i].(string); ok {
					fields[key] = keysAndValues[i+1]
				}
			}
			if len(fields) > 0 {
				entry["fields"] = fields
			}
		}
		jsonBytes, _ := json.Marshal(entry)
		s.logger.Println(string(jsonBytes))
		return
	}

	var kv strings.Builder
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		kv.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	s.logger.Printf("[%s] %s [%s] %s%s", timestamp, level.String(), s.service, msg, kv.String())
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger builds a logger for the given service name. Level comes from
// LOG_LEVEL, output format from ENV (JSON in production). GO_ENV=test
// silences logging entirely.
func NewLogger(service string) Logger {
	if os.Getenv("GO_ENV") == "test" {
		return &NoOpLogger{}
	}

	level := LogLevelInfo
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = LogLevelDebug
	case "WARN":
		level = LogLevelWarn
	case "ERROR":
		level = LogLevelError
	}

	return &ServiceLogger{
		logger:     log.New(os.Stdout, "", 0),
		level:      level,
		service:    service,
		structured: strings.ToLower(os.Getenv("ENV")) == "production",
	}
}
