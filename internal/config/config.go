/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package config

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	KeyVerbose = "parsnip.verbose"
	KeyLocal   = "parsnip.local"
	KeyMetrics = "parsnip.metrics"
)

// Load builds the parsnip settings from defaults, an optional TOML config
// file, and PARSNIP_* environment variables. A missing config file is not an
// error; an unreadable one is.
func Load(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyLocal, true)
	v.SetDefault(KeyMetrics, false)

	// parsnip.verbose is read from PARSNIP_VERBOSE, and so on
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath("/etc/parsnip")
	v.AddConfigPath("$HOME/.parsnip")
	v.AddConfigPath(".")

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	err := v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return v, nil
	} else if err != nil {
		return v, errors.Wrap(err, "loading parsnip config")
	}

	return v, nil
}

// Logger builds a zerolog.Logger from the settings in v. Local mode writes
// human readable output to stdout, otherwise JSON goes to stderr.
func Logger(v *viper.Viper) zerolog.Logger {
	var writer io.Writer

	writer = os.Stderr
	if v.GetBool(KeyLocal) {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(writer).
		Level(Level(v)).
		With().
		Timestamp().
		Logger()
}

// Level maps the verbosity count onto a log level: 0 is info, 1 debug,
// 2 or more trace.
func Level(v *viper.Viper) zerolog.Level {
	switch clamp(2, v.GetInt(KeyVerbose)) {
	case 2:
		return zerolog.TraceLevel
	case 1:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	defaultOnce     sync.Once
	defaultSettings *viper.Viper
)

// Default returns the settings loaded from the default search paths and the
// environment, loading them on first use.
func Default() *viper.Viper {
	defaultOnce.Do(func() {
		v, err := Load("")
		if err != nil {
			logger := Logger(v)
			logger.Warn().Err(err).Msg("using default parsnip settings")
		}
		defaultSettings = v
	})
	return defaultSettings
}

func clamp(clamp, a int) int {
	if a >= clamp {
		return clamp
	}
	return a
}
