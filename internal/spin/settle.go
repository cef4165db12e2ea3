package spin

import "time"

// settleHandle is the scheduled settle task for one spin. It carries a
// cancel handle even though nothing cancels a spin today, so a future
// skip-animation feature will not need to restructure the state machine.
type settleHandle struct {
	timer *time.Timer
}

// scheduleSettle fires fn once after the animation duration has elapsed.
func scheduleSettle(d time.Duration, fn func()) *settleHandle {
	return &settleHandle{timer: time.AfterFunc(d, fn)}
}

// Cancel stops the pending settle if it has not fired yet.
func (h *settleHandle) Cancel() bool {
	if h == nil || h.timer == nil {
		return false
	}
	return h.timer.Stop()
}
