package main

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// cullMargin is how far outside the screen a player may sit before the
// renderer skips drawing it. A cheap visibility test, not an exact bounds
// check.
const cullMargin = 50

const nameTagGap = 4

var nameFace = text.NewGoXFace(basicfont.Face7x13)

// nameOutlineOffsets are the stroke pass offsets for name tags; the fill
// pass lands on top at the origin.
var nameOutlineOffsets = [][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// drawScene composes one frame: world background clipped to the viewport,
// then every visible player. The pass only reads state, so repeated calls
// with an unchanged world produce identical pixels.
func (g *Game) drawScene(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.drawBackground(screen)
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	for _, p := range g.visiblePlayers(sw, sh) {
		g.drawPlayer(screen, p)
	}
}

// drawBackground blits the viewport rectangle of the world image onto the
// full screen. Until the image loads the cleared screen shows through.
func (g *Game) drawBackground(screen *ebiten.Image) {
	tex := g.background.texture()
	if tex == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	src := image.Rect(int(g.view.X), int(g.view.Y), int(g.view.X)+sw, int(g.view.Y)+sh)
	src = src.Intersect(tex.Bounds())
	if src.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(tex.SubImage(src).(*ebiten.Image), op)
}

// visiblePlayers returns the players inside the culled screen rectangle in
// a stable paint order: top to bottom, ties broken by id, so overlap
// resolution does not flicker with map iteration order.
func (g *Game) visiblePlayers(sw, sh float64) []Player {
	out := make([]Player, 0, len(g.world.players))
	for _, p := range g.world.players {
		sx := p.X - g.view.X
		sy := p.Y - g.view.Y
		if sx < -cullMargin || sx > sw+cullMargin || sy < -cullMargin || sy > sh+cullMargin {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// drawPlayer renders one sprite centered on its screen position with the
// username above it. Facing west reuses the east frame mirrored about the
// sprite center. Frames still loading are skipped without error; they show
// up on a later pass.
func (g *Game) drawPlayer(screen *ebiten.Image, p Player) {
	sx := p.X - g.view.X
	sy := p.Y - g.view.Y

	frame := g.assets.frame(p.Avatar, p.Facing, p.AnimationFrame)
	tex := frame.texture()
	if tex == nil {
		return
	}

	w := float64(tex.Bounds().Dx())
	h := float64(tex.Bounds().Dy())
	op := &ebiten.DrawImageOptions{}
	if p.Facing == dirWest {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	op.GeoM.Translate(sx-w/2, sy-h/2)
	screen.DrawImage(tex, op)

	g.drawNameTag(screen, p.Username, sx, sy-h/2-nameTagGap)
}

// drawNameTag draws the username centered at (x, y): a black stroke pass
// around a white fill so the text stays legible over any background.
func (g *Game) drawNameTag(screen *ebiten.Image, name string, x, y float64) {
	if name == "" {
		return
	}
	layout := text.LayoutOptions{
		PrimaryAlign:   text.AlignCenter,
		SecondaryAlign: text.AlignEnd,
	}
	for _, off := range nameOutlineOffsets {
		op := &text.DrawOptions{LayoutOptions: layout}
		op.GeoM.Translate(x+off[0], y+off[1])
		op.ColorScale.ScaleWithColor(color.Black)
		text.Draw(screen, name, nameFace, op)
	}
	op := &text.DrawOptions{LayoutOptions: layout}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, name, nameFace, op)
}
