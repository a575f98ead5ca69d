package main

// worldState is the reconciled local mirror of the server's player and
// avatar registries. It is owned by the game loop: only the message drain in
// Update mutates it, and Draw reads it from the same goroutine, so no lock
// is needed.
type worldState struct {
	players map[string]Player
	avatars map[string]AvatarDefinition
	localID string
	width   float64
	height  float64
}

func newWorldState(width, height float64) *worldState {
	return &worldState{
		players: make(map[string]Player),
		avatars: make(map[string]AvatarDefinition),
		width:   width,
		height:  height,
	}
}

// applyJoin replaces both registries wholesale with the join payload and
// records which player is ours.
func (w *worldState) applyJoin(m joinGameMsg) {
	w.players = make(map[string]Player, len(m.Players))
	for id, p := range m.Players {
		w.players[id] = p
	}
	w.avatars = make(map[string]AvatarDefinition, len(m.Avatars))
	for name, a := range m.Avatars {
		w.avatars[name] = a
	}
	w.localID = m.PlayerID
}

// applyPlayerJoined merges a single player and avatar into the existing
// registries. Re-joining an id overwrites the old record.
func (w *worldState) applyPlayerJoined(m playerJoinedMsg) {
	w.players[m.Player.ID] = m.Player
	if m.Avatar.Name != "" {
		w.avatars[m.Avatar.Name] = m.Avatar
	}
}

// applyPlayersMoved overwrites each updated record by id, inserting ids not
// seen before. Last write wins per id; the websocket stream is ordered and
// reconciliation is single threaded, so a merge cannot race a removal.
func (w *worldState) applyPlayersMoved(m playersMovedMsg) {
	for id, p := range m.Players {
		w.players[id] = p
	}
}

// applyPlayerLeft removes the player if present. Unknown ids are a no-op.
func (w *worldState) applyPlayerLeft(m playerLeftMsg) {
	delete(w.players, m.PlayerID)
}

// localPlayer returns our own record, if the join handshake has completed
// and the server still lists us.
func (w *worldState) localPlayer() (Player, bool) {
	if w.localID == "" {
		return Player{}, false
	}
	p, ok := w.players[w.localID]
	return p, ok
}
