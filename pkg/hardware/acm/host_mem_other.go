// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package acm

import (
	"fmt"
	"runtime"
)

func OpenHostMemory(path string) (Memory, error) {
	return nil, fmt.Errorf("mapping %s: not supported on %s", path, runtime.GOOS)
}
