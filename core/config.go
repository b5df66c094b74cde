// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strconv"
	"unsafe"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Application ApplicationConfiguration
	Window      WindowConfiguration
	Log         LogConfiguration
	Time        TimeConfiguration

	// DebugMode enables validation layers and forwards their reports to the log
	DebugMode bool
}

// ApplicationConfiguration names the application to the driver
type ApplicationConfiguration struct {
	Name string
}

// WindowConfiguration is used to configure the window
type WindowConfiguration struct {
	Title  string
	Width  int32
	Height int32
}

// LogConfiguration is used to configure diagnostics output
type LogConfiguration struct {
	// File is appended to, never truncated
	File    string
	Level   string
	Console bool
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollDelay is the delay between event polls in milliseconds
	EventPollDelay int
}

// InstanceConfiguration is used to create an Instance
type InstanceConfiguration struct {
	ApplicationName string
	DebugMode       bool
	Extensions      []string
	Layers          []string

	// ProcAddr is vkGetInstanceProcAddr, nil uses the default loader
	ProcAddr unsafe.Pointer
}

// DefaultConfiguration is used where no environment overrides exist.
var DefaultConfiguration = Configuration{
	Application: ApplicationConfiguration{
		Name: "kiln",
	},
	Window: WindowConfiguration{
		Title:  "kiln",
		Width:  800,
		Height: 600,
	},
	Log: LogConfiguration{
		File:    "output.log",
		Level:   "trace",
		Console: true,
	},
	Time: TimeConfiguration{
		EventPollDelay: 50,
	},
}

// LoadConfiguration reads the configuration from the environment,
// including a .env file in the working directory if present.
func LoadConfiguration(log logrus.FieldLogger) Configuration {
	cfg := DefaultConfiguration

	cfg.Application.Name = envString("KILN_APP_NAME", cfg.Application.Name)
	cfg.Window.Title = cfg.Application.Name
	cfg.Window.Width = int32(envInt(log, "KILN_WINDOW_WIDTH", int(cfg.Window.Width)))
	cfg.Window.Height = int32(envInt(log, "KILN_WINDOW_HEIGHT", int(cfg.Window.Height)))
	cfg.DebugMode = envBool(log, "KILN_DEBUG", cfg.DebugMode)

	cfg.Log.File = envString("KILN_LOG_FILE", cfg.Log.File)
	cfg.Log.Level = envString("KILN_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Console = envBool(log, "KILN_LOG_CONSOLE", cfg.Log.Console)

	cfg.Time.EventPollDelay = envInt(log, "KILN_EVENT_POLL_MS", cfg.Time.EventPollDelay)
	return cfg
}

// envString treats an empty value as unset
func envString(key, def string) string {
	if v := envy.Get(key, ""); v != "" {
		return v
	}
	return def
}

func envInt(log logrus.FieldLogger, key string, def int) int {
	raw := envy.Get(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.WithField("key", key).Warnf("ignoring invalid value %q, using %d", raw, def)
		return def
	}
	return v
}

func envBool(log logrus.FieldLogger, key string, def bool) bool {
	raw := envy.Get(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.WithField("key", key).Warnf("ignoring invalid value %q, using %t", raw, def)
		return def
	}
	return v
}
