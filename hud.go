package main

import (
	"fmt"
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudPad        = 6
	hudLineHeight = 14
	hudWidth      = 240
)

var hudPanelColor = color.RGBA{0, 0, 0, 0xa0}

// drawHUD overlays connection and cache statistics. Toggled with F3.
func (g *Game) drawHUD(screen *ebiten.Image) {
	state := "disconnected"
	if g.client.connected.Load() {
		state = "connected"
		if !g.joined {
			state = "joining"
		}
	}
	lines := []string{
		fmt.Sprintf("server: %s (%s)", g.client.url, state),
		fmt.Sprintf("rx: %s in %d msgs", humanize.Bytes(uint64(g.client.rxBytes.Load())), g.client.rxMsgs.Load()),
		fmt.Sprintf("tx: %s in %d msgs", humanize.Bytes(uint64(g.client.txBytes.Load())), g.client.txMsgs.Load()),
		fmt.Sprintf("players: %d  avatars: %d cached", len(g.world.players), g.assets.count()),
		fmt.Sprintf("frame loads: %d (%d failed)", g.assets.loads.Load(), g.assets.failed.Load()),
		fmt.Sprintf("viewport: %.0f,%.0f", g.view.X, g.view.Y),
		fmt.Sprintf("fps: %.0f  tps: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
	}

	panelH := float32(len(lines)*hudLineHeight + 2*hudPad)
	vector.DrawFilledRect(screen, 0, 0, hudWidth, panelH, hudPanelColor, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudPad, float64(hudPad+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, nameFace, op)
	}
}
