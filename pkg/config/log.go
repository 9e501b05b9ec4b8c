package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/consts"
	log "github.com/sirupsen/logrus"
)

// Log contains the configuration for the global logger.
type Log struct {
	// Format is text or json (default: text)
	Format string `yaml:"format,omitempty"`

	// Level is the lowest level emitted: trace, debug, info, warn or error
	// (default: info)
	Level string `yaml:"level,omitempty"`

	// File receives log lines. Blank or "-" means stderr.
	File string `yaml:"file,omitempty"`
}

// Configure applies the settings to the global logger.
func (l *Log) Configure() error {
	if err := l.validate(); err != nil {
		return err
	}

	if l.File != "" && l.File != "-" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.ModeFile)
		if err != nil {
			return errors.Wrapf(err, "failed to open log file: %s", l.File)
		}
		log.SetOutput(f)
	}

	level, _ := log.ParseLevel(l.Level)
	log.SetLevel(level)

	if l.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}

	return nil
}

func (l *Log) setDefaults() {
	if l.Format == "" {
		l.Format = "text"
	}
	if l.Level == "" {
		l.Level = "info"
	}
}

func (l *Log) validate() error {
	switch l.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log format must be either text or json, got %q", l.Format)
	}

	if _, err := log.ParseLevel(l.Level); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}
