package main

import "testing"

func newTestGame(t *testing.T) *Game {
	t.Helper()
	s := defaultSettings()
	s.AssetsDir = t.TempDir()
	return newGame(s, newGameClient(s.ServerURL, "tester"))
}

func TestHandleJoinSuccess(t *testing.T) {
	g := newTestGame(t)
	join := testJoin()
	p := join.Players["p1"]
	p.X, p.Y = 1000, 1000
	join.Players["p1"] = p

	g.handleServerMessage(join)

	if !g.joined {
		t.Fatalf("joined flag not set")
	}
	if g.view.X != 600 || g.view.Y != 700 {
		t.Fatalf("viewport = (%v,%v), want (600,700)", g.view.X, g.view.Y)
	}
	if g.assets.count() != 1 {
		t.Fatalf("avatar cache entries = %d, want 1", g.assets.count())
	}
}

func TestHandleJoinFailure(t *testing.T) {
	g := newTestGame(t)
	g.handleServerMessage(joinGameMsg{Success: false, Error: "full"})

	if g.joined {
		t.Fatalf("join failure set joined")
	}
	if len(g.world.players) != 0 || g.world.localID != "" {
		t.Fatalf("join failure mutated world: %+v", g.world)
	}
	if g.view != (viewport{}) {
		t.Fatalf("join failure moved viewport: %+v", g.view)
	}
}

func TestHandleMovedRecentersViewport(t *testing.T) {
	g := newTestGame(t)
	g.handleServerMessage(testJoin())

	g.handleServerMessage(playersMovedMsg{Players: map[string]Player{
		"p1": {ID: "p1", Username: "alice", X: 1000, Y: 1000, Avatar: "knight"},
	}})
	if g.view.X != 600 || g.view.Y != 700 {
		t.Fatalf("viewport = (%v,%v), want (600,700)", g.view.X, g.view.Y)
	}
}

func TestHandleMovedBeforeJoinKeepsViewport(t *testing.T) {
	g := newTestGame(t)
	g.handleServerMessage(playersMovedMsg{Players: map[string]Player{
		"p9": {ID: "p9", X: 1500, Y: 1500},
	}})
	if g.view != (viewport{}) {
		t.Fatalf("viewport moved without a local player: %+v", g.view)
	}
}

func TestHandlePlayerJoinedPreloadsOnce(t *testing.T) {
	g := newTestGame(t)
	g.handleServerMessage(testJoin())
	loads := g.assets.loads.Load()

	// A peer join referencing the already-known avatar reissues nothing.
	g.handleServerMessage(playerJoinedMsg{
		Player: Player{ID: "p3", Username: "carol", Avatar: "knight"},
		Avatar: testJoin().Avatars["knight"],
	})
	if got := g.assets.loads.Load(); got != loads {
		t.Fatalf("peer join reissued avatar loads: %d -> %d", loads, got)
	}
	if len(g.world.players) != 3 {
		t.Fatalf("players = %d, want 3", len(g.world.players))
	}
}

func TestHandleUnknownActionIsHarmless(t *testing.T) {
	g := newTestGame(t)
	g.handleServerMessage(testJoin())
	before := len(g.world.players)

	g.handleServerMessage(unknownMsg{Action: "weather_report"})

	if len(g.world.players) != before {
		t.Fatalf("unknown action mutated world")
	}
}

func TestHandlePlayerLeftThenMovedResurrects(t *testing.T) {
	// Merges are applied verbatim: an update for a removed id re-inserts
	// it. The stream is ordered, so the server said the player is back.
	g := newTestGame(t)
	g.handleServerMessage(testJoin())
	g.handleServerMessage(playerLeftMsg{PlayerID: "p2"})
	g.handleServerMessage(playersMovedMsg{Players: map[string]Player{
		"p2": {ID: "p2", Username: "bob", X: 7, Y: 8},
	}})
	if _, ok := g.world.players["p2"]; !ok {
		t.Fatalf("moved update after leave was dropped")
	}
}
