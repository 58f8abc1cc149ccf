package fiberlog

import "github.com/sirupsen/logrus"

// Config controls the request-logging middleware.
type Config struct {
	// Logger receives the request entries. The package-level logrus logger
	// is used when nil.
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault is used when New is called without a config. The default tag
// set is what the API log dashboards filter on; bodies are opt-in through
// initializers.InitLogger.
var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		RequestID,
	},
}
