// Copyright 2021 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metric

import (
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds every collector created through this package.
	Registry = prometheus.NewRegistry()

	mu         sync.Mutex
	collectors = make(map[string]prometheus.Collector)
)

// MetricOpts contains naming pieces of the exposed metric
type MetricOpts struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
}

// Counter creates and returns a prometheus.CounterVec, or the one
// already registered under the same name
func Counter(opts MetricOpts, labels []string) *prometheus.CounterVec {
	return getOrCreate(opts, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Subsystem: opts.Subsystem,
			Name:      opts.Name,
			Help:      help(opts),
		}, labels)
	}).(*prometheus.CounterVec)
}

// Histogram creates and returns a prometheus.HistogramVec, or the one
// already registered under the same name
func Histogram(opts MetricOpts, labels []string, buckets []float64) *prometheus.HistogramVec {
	return getOrCreate(opts, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Subsystem: opts.Subsystem,
			Name:      opts.Name,
			Help:      help(opts),
			Buckets:   buckets,
		}, labels)
	}).(*prometheus.HistogramVec)
}

// WriteTextfile dumps the registry in the text exposition format, for
// node_exporter's textfile collector
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func getOrCreate(opts MetricOpts, create func() prometheus.Collector) prometheus.Collector {
	name := optsToString(opts)
	mu.Lock()
	defer mu.Unlock()
	if c, ok := collectors[name]; ok {
		return c
	}
	c := create()
	Registry.MustRegister(c)
	collectors[name] = c
	return c
}

func help(opts MetricOpts) string {
	if opts.Help != "" {
		return opts.Help
	}
	return strings.ReplaceAll(optsToString(opts), "_", " ")
}

func optsToString(opts MetricOpts) string {
	if opts.Name == "" {
		return ""
	}
	switch {
	case opts.Namespace != "" && opts.Subsystem != "":
		return strings.Join([]string{opts.Namespace, opts.Subsystem, opts.Name}, "_")
	case opts.Namespace != "":
		return strings.Join([]string{opts.Namespace, opts.Name}, "_")
	case opts.Subsystem != "":
		return strings.Join([]string{opts.Subsystem, opts.Name}, "_")
	}
	return opts.Name
}
