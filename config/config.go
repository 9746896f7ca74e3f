// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Set at build time with -ldflags "-X github.com/u-root/u-acm/config.gitVersion=..."
var (
	gitVersion = "dev"
	gitHash    = "unknown"
)

type Version struct {
	Version string `yaml:"-"`
	GitHash string `yaml:"-"`
}

type Device struct {
	// PCI BAR resource file holding the ACM command bus registers.
	Resource string `yaml:"resource"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Metrics struct {
	// Written once after bring-up, for node_exporter's textfile collector.
	// Empty disables the export.
	Textfile string `yaml:"textfile"`
}

type Config struct {
	Device  Device  `yaml:"device"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
	// Print the register accesses instead of performing them.
	DryRun  bool    `yaml:"dry_run"`
	Version Version `yaml:"-"`
}

var DefaultConfig = &Config{
	// The AE-9 exposes the ACM bus in BAR2. The bus address varies per
	// machine, so this is only a starting point.
	Device: Device{
		Resource: "/sys/bus/pci/devices/0000:03:00.0/resource2",
	},

	Log: Log{
		Level: "info",
	},

	Version: Version{
		Version: gitVersion,
		GitHash: gitHash,
	},
}

// Load returns DefaultConfig overlaid with the YAML file at path. Keys
// missing from the file keep their default value. The result is not
// validated.
func Load(fs afero.Fs, path string) (*Config, error) {
	c := *DefaultConfig
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the final configuration, after any command line
// overrides have been applied.
func (c *Config) Validate() error {
	if c.Device.Resource == "" && !c.DryRun {
		return fmt.Errorf("device.resource is empty")
	}
	return nil
}
