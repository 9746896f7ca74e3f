// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// acminit brings the AE-9 audio control module online. It maps the BAR
// holding the ACM command bus, replays the bring-up sequence once and
// exits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/u-root/u-acm/config"
	"github.com/u-root/u-acm/pkg/hardware/acm"
	"github.com/u-root/u-acm/pkg/logger"
	"github.com/u-root/u-acm/pkg/metric"
)

var (
	configFile  = flag.String("config", "", "YAML file overriding the built-in configuration")
	resource    = flag.String("resource", "", "PCI BAR resource file with the ACM registers")
	logLevel    = flag.String("log_level", "", "Log level (debug, info, warn, error)")
	logFile     = flag.String("log_file", "", "Also write JSON logs to this file")
	textfile    = flag.String("metrics_textfile", "", "Write metrics to this file after bring-up")
	dryRun      = flag.Bool("dry_run", false, "Print register accesses instead of touching hardware")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func loadConfig() (*config.Config, error) {
	c := *config.DefaultConfig
	if *configFile != "" {
		l, err := config.Load(afero.NewOsFs(), *configFile)
		if err != nil {
			return nil, err
		}
		c = *l
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resource":
			c.Device.Resource = *resource
		case "log_level":
			c.Log.Level = *logLevel
		case "log_file":
			c.Log.File = *logFile
		case "metrics_textfile":
			c.Metrics.Textfile = *textfile
		case "dry_run":
			c.DryRun = *dryRun
		}
	})
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// run performs one bring-up as described by c. Dry runs print their
// trace to out.
func run(c *config.Config, l *zap.Logger, out io.Writer) error {
	opts := []acm.Option{acm.WithLogger(l)}
	var mem acm.Memory
	if c.DryRun {
		tm := acm.NewTraceMemory(out)
		opts = append(opts, acm.WithSleeper(tm))
		mem = tm
	} else {
		m, err := acm.OpenHostMemory(c.Device.Resource)
		if err != nil {
			// Bring-up reports the missing window on its own.
			l.Warn("Unable to map ACM registers", logger.LogContainer.String("resource", c.Device.Resource), zap.Error(err))
		} else {
			defer m.Close()
			mem = m
		}
	}

	err := acm.BringUp(mem, opts...)
	if c.Metrics.Textfile != "" {
		if merr := metric.WriteTextfile(c.Metrics.Textfile); merr != nil {
			l.Error("Unable to export metrics", zap.Error(merr))
		}
	}
	return err
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("acminit %s (%s)\n", config.DefaultConfig.Version.Version, config.DefaultConfig.Version.GitHash)
		return
	}

	c, err := loadConfig()
	if err != nil {
		log.Fatalf("acminit: %v", err)
	}
	if err := logger.LogContainer.Configure(logger.Options{Level: c.Log.Level, File: c.Log.File}); err != nil {
		log.Fatalf("acminit: %v", err)
	}
	defer logger.LogContainer.Close()

	if err := run(c, logger.LogContainer.GetLogger(), os.Stdout); err != nil {
		logger.LogContainer.GetLogger().Error("ACM bring-up failed", zap.Error(err))
		logger.LogContainer.Close()
		os.Exit(1)
	}
}
