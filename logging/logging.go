// Package logging builds the structured loggers of the service. It is
// deliberately free of configuration so importing it never requires a
// deployment environment.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a component-tagged structured logger writing to
// stdout. Every subsystem gets its own component field so interleaved
// logs stay attributable.
func NewLogger(component string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger.WithField("component", component)
}
