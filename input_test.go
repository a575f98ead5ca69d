package main

import "testing"

// recordingSender captures outbound commands for assertions.
type recordingSender struct {
	sent []clientMessage
}

func (r *recordingSender) sendCommand(msg clientMessage) error {
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) actions() []string {
	out := make([]string, 0, len(r.sent))
	for _, m := range r.sent {
		if m.Action == "move" {
			out = append(out, "move:"+m.Direction)
		} else {
			out = append(out, m.Action)
		}
	}
	return out
}

func assertCommands(t *testing.T, r *recordingSender, want ...string) {
	t.Helper()
	got := r.actions()
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commands = %v, want %v", got, want)
		}
	}
}

func TestIntentSingleStopAfterLastRelease(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveUp, true)
	m.setHeld(moveLeft, true)
	m.setHeld(moveUp, false)
	m.setHeld(moveLeft, false)

	assertCommands(t, out, "move:up", "move:left", "stop")
}

func TestIntentKeyRepeatSwallowed(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveUp, true)
	m.setHeld(moveUp, true)
	m.setHeld(moveUp, true)

	assertCommands(t, out, "move:up")
}

func TestIntentDirectionChangeWhileMoving(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveRight, true)
	m.setHeld(moveDown, true)
	m.setHeld(moveRight, false)

	// Still moving on down; no stop yet.
	assertCommands(t, out, "move:right", "move:down")
	if !m.moving() {
		t.Fatalf("moving() = false with a key held")
	}
}

func TestIntentNoStopWhenAlreadyStopped(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveUp, false)
	m.setHeld(moveDown, false)

	assertCommands(t, out)
}

func TestIntentReleaseAll(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveUp, true)
	m.setHeld(moveLeft, true)
	m.release()

	assertCommands(t, out, "move:up", "move:left", "stop")
	if m.moving() {
		t.Fatalf("moving() = true after release")
	}

	// A second release emits nothing.
	m.release()
	assertCommands(t, out, "move:up", "move:left", "stop")
}

func TestIntentResetIsSilent(t *testing.T) {
	out := &recordingSender{}
	m := newMovementIntent(out)

	m.setHeld(moveUp, true)
	m.reset()

	assertCommands(t, out, "move:up")
	if m.moving() {
		t.Fatalf("moving() = true after reset")
	}
	// The next press is a fresh edge.
	m.setHeld(moveUp, true)
	assertCommands(t, out, "move:up", "move:up")
}
