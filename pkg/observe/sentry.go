package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth  = 9
	_sentryRequestTimeout = 5 * time.Second
)

// SentryHook is an io.Writer that can be attached to the logger next to
// stdout. It decodes each JSON log line and forwards error-level entries
// to Sentry; everything below error level is dropped.
type SentryHook struct {
	appZone string
	appName string
}

func NewSentryHook(appZone, appName, dsn string, isDebug bool) *SentryHook {
	if dsn == "" {
		log.Println("sentry hook: no DSN, events will not be delivered")
	}
	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryRequestTimeout
	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appZone,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        transport,
	}); err != nil {
		log.Println("sentry hook init error:", err.Error())
	}
	return &SentryHook{
		appZone: appZone,
		appName: appName,
	}
}

type logLine struct {
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Timestamp  string `json:"timestamp"`
}

func (h *SentryHook) Write(p []byte) (int, error) {
	var t logLine
	if err := json.Unmarshal(p, &t); err != nil {
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil || level < zapcore.ErrorLevel || t.Message == "" {
		return len(p), nil
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = mapLevel(level)
	event.Message = t.Message
	if ts, err := time.Parse("2006-01-02T15-04-05.000", t.Timestamp); err == nil {
		event.Timestamp = ts
	}
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = t.Error
	event.Extra["CallerFile"] = t.CallerFile
	event.Extra["CallerLine"] = t.CallerLine
	event.Extra["CallerFunc"] = t.CallerFunc
	event.Extra["Stack"] = t.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       t.Message,
		Value:      t.Error,
		Stacktrace: sentry.NewStacktrace(),
	})
	sentry.CaptureEvent(event)

	return len(p), nil
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}
