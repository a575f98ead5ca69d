package main

// viewport is the top-left world coordinate of the visible rectangle. Its
// size is always the logical screen size, so only the origin is stored.
type viewport struct {
	X, Y float64
}

// computeViewport centers the camera on (px, py), clamped so the view never
// leaves the world. When the world is smaller than the screen the origin
// degenerates to 0.
func computeViewport(px, py, screenW, screenH, worldW, worldH float64) viewport {
	return viewport{
		X: clampf(px-screenW/2, 0, maxf(0, worldW-screenW)),
		Y: clampf(py-screenH/2, 0, maxf(0, worldH-screenH)),
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
