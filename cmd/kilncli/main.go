// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/core"
	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/utility/vkutil"
	"github.com/sirupsen/logrus"
)

var (
	debug  = flag.Bool("debug", false, "enable validation layers")
	indent = flag.Bool("indent", true, "indent the JSON report")
)

type deviceReport struct {
	Name          string                   `json:"name"`
	Type          device.DeviceType        `json:"type"`
	Score         int                      `json:"score"`
	APIVersion    string                   `json:"apiVersion"`
	Suitable      bool                     `json:"suitable"`
	Missing       []string                 `json:"missingExtensions,omitempty"`
	QueueFamilies []device.QueueFamilyInfo `json:"queueFamilies"`
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kilncli: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run() error {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	if *debug {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.SetFormatter(&core.Formatter{DefaultTarget: "kilncli"})

	instance, err := core.NewVulkanInstance(core.InstanceConfiguration{
		ApplicationName: "kilncli",
		DebugMode:       *debug,
	}, logger.WithField(core.TargetKey, "instance"))
	if err != nil {
		return errors.WithHint(err, "make sure a Vulkan driver and the Vulkan loader are installed")
	}
	defer instance.Destroy()

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return err
	}

	out, err := marshal(report(devices, device.RequiredExtensions()), *indent)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", out)
	return nil
}

func report(devices []device.PhysicalDeviceInfo, required device.ExtensionSet) []deviceReport {
	reports := make([]deviceReport, 0, len(devices))
	for _, dev := range devices {
		missing := dev.Extensions.Missing(required)
		reports = append(reports, deviceReport{
			Name:          dev.Name,
			Type:          dev.Type,
			Score:         dev.Type.Score(),
			APIVersion:    vkutil.DecodeVersion(dev.APIVersion).String(),
			Suitable:      !dev.Invalid && len(missing) == 0,
			Missing:       missing,
			QueueFamilies: dev.QueueFamilies,
		})
	}
	return reports
}

func marshal(v interface{}, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
