package editor

import "time"

// requestResync marks the surface stale. Requests made before the next
// drain collapse into a single rebuild.
func (e *Editor) requestResync(delay time.Duration) {
	if e.pending {
		e.log.Debug().Dur("delay", delay).Msg("resync coalesced")
		return
	}
	e.pending = true
	if e.opts.Scheduler != nil {
		e.opts.Scheduler.Schedule(delay, e.drain)
	}
}

func (e *Editor) drain() {
	if e.pending {
		e.resync()
	}
}

// Pending reports whether a resync has been requested but not run.
func (e *Editor) Pending() bool { return e.pending }

// Flush runs a pending resync immediately. Hosts without a Scheduler call
// it from their event loop.
func (e *Editor) Flush() { e.drain() }
