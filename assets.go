package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// spriteFrame is one loadable frame image. A loader goroutine decodes the
// pixels; the upload to a GPU texture is deferred to the first draw that
// needs it, so loading never touches the graphics backend.
type spriteFrame struct {
	src   string
	ready atomic.Bool
	mu    sync.Mutex
	img   image.Image
	tex   *ebiten.Image
}

func (f *spriteFrame) complete(img image.Image) {
	f.mu.Lock()
	f.img = img
	f.mu.Unlock()
	f.ready.Store(true)
}

// texture returns the drawable image, or nil while the frame is still
// loading or if its load failed. Draw calls simply skip nil frames and pick
// them up on a later pass.
func (f *spriteFrame) texture() *ebiten.Image {
	if f == nil || !f.ready.Load() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tex == nil && f.img != nil {
		f.tex = ebiten.NewImageFromImage(f.img)
		f.img = nil
	}
	return f.tex
}

// avatarEntry holds the cached frame set for one avatar id, parallel to its
// AvatarDefinition. Only the three stored facings exist; west reuses east.
type avatarEntry struct {
	north []*spriteFrame
	south []*spriteFrame
	east  []*spriteFrame
}

func (e *avatarEntry) facing(dir string) []*spriteFrame {
	switch dir {
	case dirNorth:
		return e.north
	case dirEast, dirWest:
		return e.east
	default:
		return e.south
	}
}

// avatarCache lazily loads avatar frames, at most once per avatar id no
// matter how many join events mention it. Loads run on a bounded pool so a
// join payload with many avatars cannot spawn an unbounded goroutine burst.
type avatarCache struct {
	baseDir string

	mu      sync.Mutex
	avatars map[string]*avatarEntry

	swg    sizedwaitgroup.SizedWaitGroup
	loads  atomic.Int64
	failed atomic.Int64
}

func newAvatarCache(baseDir string) *avatarCache {
	return &avatarCache{
		baseDir: baseDir,
		avatars: make(map[string]*avatarEntry),
		swg:     sizedwaitgroup.New(runtime.NumCPU()),
	}
}

// ensure creates the cache entry for an avatar and starts loading all of
// its frames. Presence of the entry is the idempotence guard: a second call
// for the same id returns without issuing anything.
func (c *avatarCache) ensure(def AvatarDefinition) {
	if def.Name == "" {
		return
	}
	c.mu.Lock()
	if _, ok := c.avatars[def.Name]; ok {
		c.mu.Unlock()
		return
	}
	entry := &avatarEntry{
		north: c.newFrames(def.Frames.North),
		south: c.newFrames(def.Frames.South),
		east:  c.newFrames(def.Frames.East),
	}
	c.avatars[def.Name] = entry
	c.mu.Unlock()
	logDebug("caching avatar %q: %d north, %d south, %d east frames",
		def.Name, len(entry.north), len(entry.south), len(entry.east))
}

func (c *avatarCache) newFrames(srcs []string) []*spriteFrame {
	frames := make([]*spriteFrame, len(srcs))
	for i, src := range srcs {
		f := &spriteFrame{src: src}
		frames[i] = f
		c.loads.Add(1)
		go c.load(f)
	}
	return frames
}

func (c *avatarCache) load(f *spriteFrame) {
	c.swg.Add()
	defer c.swg.Done()
	img, err := loadImageSource(c.baseDir, f.src)
	if err != nil {
		c.failed.Add(1)
		logError("load frame %q: %v", f.src, err)
		return
	}
	f.complete(img)
}

// frame resolves (avatar id, facing, index) to a cached frame. The index
// wraps modulo the frame count so a stale animation index never misses.
// Returns nil for unknown avatars or empty frame sets.
func (c *avatarCache) frame(avatar, facing string, index int) *spriteFrame {
	c.mu.Lock()
	entry, ok := c.avatars[avatar]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	frames := entry.facing(facing)
	if len(frames) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	return frames[index%len(frames)]
}

func (c *avatarCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.avatars)
}

// loadBackground starts an asynchronous load of the world background image
// and returns its frame handle immediately.
func loadBackground(baseDir, src string) *spriteFrame {
	f := &spriteFrame{src: src}
	go func() {
		img, err := loadImageSource(baseDir, src)
		if err != nil {
			logError("load world background %q: %v", src, err)
			return
		}
		f.complete(img)
	}()
	return f
}

// loadImageSource fetches and decodes one image source. Sources are either
// http(s) URLs or paths resolved against the assets directory.
func loadImageSource(baseDir, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %v: %v", src, resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		return img, err
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	return img, err
}
