package tracking

// announcer decides when a newly-matched step should be spoken.
// lastAnnounced advances even while muted, so unmuting mid-route never
// replays a burst of instructions for steps already passed.
type announcer struct {
	lastAnnounced int
}

func newAnnouncer() announcer {
	return announcer{lastAnnounced: -1}
}

// observe records the step index and reports whether it is new
// announcement territory. The mute check happens at emit time, not
// here; bookkeeping must run regardless.
func (a *announcer) observe(stepIndex int) bool {
	if stepIndex <= a.lastAnnounced {
		return false
	}
	a.lastAnnounced = stepIndex
	return true
}

// reset is called when the active route is replaced wholesale.
func (a *announcer) reset() {
	a.lastAnnounced = -1
}
