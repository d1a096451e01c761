// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"runtime"
	"sync"
)

// parallelFor runs fn(i) for i in [0,n) using contiguous chunks distributed
// over nw goroutines and waits for completion. There is no ordering guarantee
// among elements; fn must only share grid accumulators guarded by node locks
func parallelFor(n, nw int, fn func(i int)) {
	if n == 0 {
		return
	}
	if nw < 1 {
		nw = runtime.GOMAXPROCS(0)
	}
	if nw > n {
		nw = n
	}
	chunk := (n + nw - 1) / nw
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
