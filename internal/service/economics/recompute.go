package economics

// Recomputer coalesces bursts of invalidations into single
// recomputations. Rapid slider-style input may call Invalidate many
// times before the previous recompute finishes; at most one recompute
// is kept pending and it always reads the latest values, so
// intermediate states are dropped (last write wins).
type Recomputer struct {
	fn   func()
	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewRecomputer wraps fn, the recomputation to run. fn must read its
// inputs at call time rather than capture them.
func NewRecomputer(fn func()) *Recomputer {
	return &Recomputer{
		fn:   fn,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the recompute loop.
func (r *Recomputer) Start() {
	go r.loop()
}

// Invalidate marks the current result stale. Never blocks; if a
// recompute is already pending the call folds into it.
func (r *Recomputer) Invalidate() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Stop terminates the loop. A recompute in progress finishes first.
func (r *Recomputer) Stop() {
	close(r.quit)
	<-r.done
}

func (r *Recomputer) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		case <-r.wake:
			r.fn()
		}
	}
}
