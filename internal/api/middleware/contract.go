package middleware

import "time"

// MetricsRecorder метрики HTTP запросов
type MetricsRecorder interface {
	ObserveHTTPRequest(method, path, status string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
