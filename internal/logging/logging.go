// Package logging constructs the single zap.Logger instance trieplace's
// entrypoint passes explicitly to the components that need one, following
// dphaener-conduit's pattern of constructing zap loggers at the point of
// use rather than reaching for a package-level global.
package logging

import "go.uber.org/zap"

// New returns a production zap.Logger, or a development one (human-
// readable, more verbose) when dev is true. Construction failures fall
// back to a no-op logger rather than aborting startup over logging alone.
func New(dev bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
