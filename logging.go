package shop

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
)

// Logger is the structured logging contract used across the package
type Logger = glog.Logger

// LoggerProvider hands out named loggers so each component can log
// under its own scope, e.g. "shop.token_service"
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// ResolveLogger normalizes the (provider, logger) pair a component was
// configured with. A nil provider is backed by the fallback logger; a
// provider that returns nil for the name falls back as well.
func ResolveLogger(name string, provider LoggerProvider, fallback Logger) (LoggerProvider, Logger) {
	if fallback == nil {
		fallback = defaultLogger()
	}

	if provider == nil {
		provider = glog.ProviderFromLogger(fallback)
	}

	guarded := guardedLoggerProvider{provider: provider, fallback: fallback}

	return guarded, guarded.GetLogger(name)
}

type guardedLoggerProvider struct {
	provider LoggerProvider
	fallback Logger
}

func (g guardedLoggerProvider) GetLogger(name string) Logger {
	if g.provider != nil {
		if logger := g.provider.GetLogger(name); logger != nil {
			return logger
		}
	}
	return g.fallback
}

func defaultLogger() Logger {
	return glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithName("shop"),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)
}
