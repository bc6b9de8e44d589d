package erosion

import "github.com/dgravesa/go-parallel/parallel"

// pfor runs body for every index in [0, n), optionally capping the worker
// count. Returns only after every task finished, which is what gives the
// pipeline its inter-stage barrier.
func pfor(workers, n int, body func(i, grID int)) {
	if n <= 0 {
		return
	}
	if workers > 0 {
		parallel.WithNumGoroutines(workers).For(n, body)
		return
	}
	parallel.For(n, body)
}
