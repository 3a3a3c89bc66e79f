package media

import (
	"github.com/easayliu/media-url-resolver/pkg/logger"
)

// Severity 事件日志级别
type Severity string

const (
	SeverityInformation Severity = "INFORMATION"
	SeverityWarning     Severity = "WARNING"
	SeverityError       Severity = "ERROR"
)

// EventLog 诊断事件日志
type EventLog interface {
	LogInformation(source, message string)
	LogException(source string, severity Severity, err error, message string)
}

// LoggerEventLog 写入全局logger的事件日志
type LoggerEventLog struct {
	SiteName string
}

func (l LoggerEventLog) LogInformation(source, message string) {
	logger.Info(message, "source", source, "severity", SeverityInformation, "site", l.SiteName)
}

func (l LoggerEventLog) LogException(source string, severity Severity, err error, message string) {
	args := []any{"source", source, "severity", severity, "site", l.SiteName, "error", err}
	switch severity {
	case SeverityError:
		logger.Error(message, args...)
	case SeverityWarning:
		logger.Warn(message, args...)
	default:
		logger.Info(message, args...)
	}
}
