package main

// commandSender delivers an outbound command. Sends are fire and forget;
// the authoritative position only comes back through players_moved.
type commandSender interface {
	sendCommand(clientMessage) error
}

// movementIntent tracks which of the four logical movement keys are held
// and turns edges into a minimal command stream: one move per fresh
// key-down, one stop per moving-to-stopped transition. Owned by the game
// loop, which feeds it the polled key state every tick.
type movementIntent struct {
	held map[string]bool
	out  commandSender
}

func newMovementIntent(out commandSender) *movementIntent {
	return &movementIntent{
		held: make(map[string]bool, 4),
		out:  out,
	}
}

// setHeld records the current physical state of one logical key. Repeated
// calls with an unchanged state do nothing, which swallows OS key repeat.
// A key-down always emits its direction, even while already moving, so the
// server learns direction changes mid-walk. The stop is emitted exactly
// once, when the last held key is released.
func (m *movementIntent) setHeld(dir string, held bool) {
	if held == m.held[dir] {
		return
	}
	if held {
		m.held[dir] = true
		if err := m.out.sendCommand(moveCommand(dir)); err != nil {
			logError("send move %s: %v", dir, err)
		}
		return
	}
	delete(m.held, dir)
	if !m.moving() {
		if err := m.out.sendCommand(stopCommand()); err != nil {
			logError("send stop: %v", err)
		}
	}
}

// moving is the aggregate over all four keys, recomputed from the held set
// rather than tracked incrementally.
func (m *movementIntent) moving() bool {
	return len(m.held) > 0
}

// release lets go of every held key, emitting the single stop the
// transition calls for. Used when the window loses focus so stale intent
// does not keep the player walking.
func (m *movementIntent) release() {
	if !m.moving() {
		return
	}
	clear(m.held)
	if err := m.out.sendCommand(stopCommand()); err != nil {
		logError("send stop: %v", err)
	}
}

// reset forgets all held keys without emitting anything. Used across a
// disconnect, where the server forgets our movement state anyway.
func (m *movementIntent) reset() {
	clear(m.held)
}
