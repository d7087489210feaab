package form

import "go.uber.org/zap"

// State is a submit lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateAccepted   State = "accepted"
)

func (s State) String() string {
	return string(s)
}

func (h *Handle) transition(to State) {
	from := h.state
	h.state = to
	h.cfg.logger.Debug("form state transition",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
	if h.cfg.observer != nil {
		h.cfg.observer(from, to)
	}
}
