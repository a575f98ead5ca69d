package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game owns the session state and implements ebiten.Game. Reconciliation,
// input polling and drawing all run on the game loop goroutine; the network
// client only ever touches the inbound channel.
type Game struct {
	settings   Settings
	client     *gameClient
	world      *worldState
	assets     *avatarCache
	intent     *movementIntent
	view       viewport
	background *spriteFrame

	// ctx ends the session; Update reports termination once it is done.
	ctx context.Context

	joined  bool
	showHUD bool
}

func newGame(s Settings, client *gameClient) *Game {
	return &Game{
		settings:   s,
		client:     client,
		world:      newWorldState(s.WorldWidth, s.WorldHeight),
		assets:     newAvatarCache(s.AssetsDir),
		intent:     newMovementIntent(client),
		background: loadBackground(s.AssetsDir, s.WorldImage),
	}
}

// movementKeys maps each logical direction to the physical keys that can
// hold it. Arrows and WASD are interchangeable.
var movementKeys = []struct {
	dir  string
	keys []ebiten.Key
}{
	{moveUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{moveDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{moveLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{moveRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

func (g *Game) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.drainMessages()
	g.pollMovementKeys()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showHUD = !g.showHUD
	}
	return nil
}

// drainMessages applies every queued server message before input and
// drawing run, one at a time, so the world is never observed between the
// parts of a single update.
func (g *Game) drainMessages() {
	for {
		select {
		case msg := <-g.client.inbound:
			g.handleServerMessage(msg)
		default:
			return
		}
	}
}

// handleServerMessage applies one decoded message to the world. Ebiten
// redraws every frame, so mutating state here is all a redraw takes.
func (g *Game) handleServerMessage(msg serverMessage) {
	switch m := msg.(type) {
	case joinGameMsg:
		if !m.Success {
			logError("server rejected join: %v", m.Error)
			return
		}
		g.world.applyJoin(m)
		for _, a := range m.Avatars {
			g.assets.ensure(a)
		}
		g.joined = true
		g.recomputeViewport()
		logInfo("joined as %v (%d players, %d avatars)",
			m.PlayerID, len(m.Players), len(m.Avatars))
	case playerJoinedMsg:
		g.world.applyPlayerJoined(m)
		g.assets.ensure(m.Avatar)
		logDebug("player joined: %v", m.Player.ID)
	case playersMovedMsg:
		g.world.applyPlayersMoved(m)
		g.recomputeViewport()
	case playerLeftMsg:
		g.world.applyPlayerLeft(m)
		logDebug("player left: %v", m.PlayerID)
	case unknownMsg:
		logInfo("ignoring unrecognized action %q", m.Action)
	}
}

// recomputeViewport re-centers the camera on the local player. Before the
// join completes there is nothing to center on and the prior viewport
// stands.
func (g *Game) recomputeViewport() {
	p, ok := g.world.localPlayer()
	if !ok {
		return
	}
	g.view = computeViewport(p.X, p.Y,
		float64(g.settings.ScreenWidth), float64(g.settings.ScreenHeight),
		g.world.width, g.world.height)
}

// pollMovementKeys feeds the aggregate key state to the intent controller.
// While unfocused all keys read as released so a held walk does not stick.
func (g *Game) pollMovementKeys() {
	if !g.client.connected.Load() {
		g.intent.reset()
		return
	}
	if !ebiten.IsFocused() {
		g.intent.release()
		return
	}
	for _, mk := range movementKeys {
		held := false
		for _, k := range mk.keys {
			if ebiten.IsKeyPressed(k) {
				held = true
				break
			}
		}
		g.intent.setHeld(mk.dir, held)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawScene(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.ScreenWidth, g.settings.ScreenHeight
}
