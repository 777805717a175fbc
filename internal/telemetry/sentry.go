// Package telemetry reports unexpected failures to Sentry. Every function is
// safe to call when Sentry was never initialised.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry initialises the SDK. An empty dsn leaves Sentry disabled and
// returns false.
func InitSentry(dsn, service, env, release string) (bool, error) {
	if dsn == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
		Tags: map[string]string{
			"service": service,
		},
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			return scrubPII(event)
		},
	})
	if err != nil {
		return false, fmt.Errorf("initialising sentry: %w", err)
	}
	return true, nil
}

// CaptureError sends err with tags attached.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered events. Call with defer in main.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// scrubPII drops member emails and client addresses before events leave the
// process.
func scrubPII(event *sentry.Event) *sentry.Event {
	if event == nil {
		return nil
	}
	if event.User.Email != "" {
		event.User.Email = "[redacted]"
	}
	event.User.IPAddress = ""

	if event.Request != nil {
		for k := range event.Request.Headers {
			switch k {
			case "Authorization", "Cookie", "X-Forwarded-For", "X-Real-Ip":
				event.Request.Headers[k] = "[redacted]"
			}
		}
		if event.Request.Data != "" {
			event.Request.Data = "[redacted]"
		}
	}
	return event
}
