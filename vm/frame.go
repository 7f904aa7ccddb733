package vm

import (
	"math/big"
)

// Frame describes one active invocation.
type Frame struct {
	From     *Account
	To       *Account
	Method   string
	Value    *big.Int
	ReadOnly bool
}

func (e *Engine) currentFrame() *Frame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// isReadOnly reports whether the innermost frame forbids modifications.
func (e *Engine) isReadOnly() bool {
	frame := e.currentFrame()
	return frame != nil && frame.ReadOnly
}

// pushFrame opens a frame together with a state snapshot and an event
// frame. A read-only frame makes all nested frames read-only.
func (e *Engine) pushFrame(from, to *Account, readOnly bool, method string, value *big.Int) {
	e.frames = append(e.frames, &Frame{
		From:     from,
		To:       to,
		Method:   method,
		Value:    new(big.Int).Set(value),
		ReadOnly: readOnly || e.isReadOnly(),
	})
	e.state.Push()
	if e.events != nil {
		e.events.Push()
	}
	e.logger.Trace("Enter frame", "depth", len(e.frames), "from", from, "to", to, "method", method, "value", value)
}

// applyFrame keeps the effects of the innermost frame. It is followed by
// popFrame, which then has nothing left to discard.
func (e *Engine) applyFrame() {
	e.state.Apply()
	e.state.Push()
	if e.events != nil {
		e.events.Commit()
		e.events.Push()
	}
}

// popFrame closes the innermost frame and discards its remaining effects.
func (e *Engine) popFrame() {
	e.state.Pop()
	if e.events != nil {
		e.events.Pop()
	}
	e.frames = e.frames[:len(e.frames)-1]
	e.logger.Trace("Leave frame", "depth", len(e.frames)+1)
}
