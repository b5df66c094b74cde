// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/core"
	"github.com/devblok/kiln/surface"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var envFile = flag.String("env", "", "additional dotenv file to load")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kiln: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run() error {
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return errors.Wrapf(err, "loading %s", *envFile)
		}
		envy.Reload()
	}

	configuration := core.LoadConfiguration(logrus.StandardLogger())
	logger, closeLog, err := core.NewLogger(configuration.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.WithField(core.TargetKey, "kiln")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "sdl.Init()")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return errors.WithHint(errors.Wrap(err, "sdl.VulkanLoadLibrary()"),
			"make sure the Vulkan loader is installed")
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := surface.NewWindow(configuration.Window.Title,
		configuration.Window.Width, configuration.Window.Height)
	if err != nil {
		return err
	}
	defer window.Destroy()

	engine, err := core.NewEngine(configuration, window, core.NewVulkanInstance, logger)
	if err != nil {
		log.WithError(err).Error("Engine construction failed")
		return err
	}
	defer engine.Destroy()

	log.Infof("Running on %s with %d swapchain images", engine.PhysicalDevice().Name, len(engine.Images()))

	time := core.NewTime(configuration.Time)
	defer time.Stop()

EventLoop:
	for range time.EventTicker().C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					break EventLoop
				}
			case *sdl.QuitEvent:
				break EventLoop
			}
		}
	}

	log.Trace("Event loop exited")
	return nil
}
