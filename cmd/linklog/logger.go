package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/leshylabs/LinkLog/pkg/config"
)

func configureLogger(l *logrus.Logger, c config.LoggingConfig) error {
	level, err := logrus.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return fmt.Errorf("%s; possible levels: %s", err, logrus.AllLevels)
	}
	l.SetLevel(level)

	switch strings.ToLower(c.Format) {
	case "text":
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		l.Formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("unknown log format %q. possible formats: %s", c.Format, []string{"text", "json"})
	}

	return nil
}
