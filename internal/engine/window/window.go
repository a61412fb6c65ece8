// Package window opens the SDL2 window and GL 4.1 core context the globe is drawn into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

func init() {
	// GL and SDL video calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// Window owns the SDL window and its GL context.
type Window struct {
	sdl *sdl.Window
	ctx sdl.GLContext
	log *zap.Logger
}

func glAttributes(samples int) [][2]int {
	attrs := [][2]int{
		{int(sdl.GL_CONTEXT_MAJOR_VERSION), 4},
		{int(sdl.GL_CONTEXT_MINOR_VERSION), 1},
		{int(sdl.GL_CONTEXT_PROFILE_MASK), sdl.GL_CONTEXT_PROFILE_CORE},
		{int(sdl.GL_DOUBLEBUFFER), 1},
		{int(sdl.GL_DEPTH_SIZE), 24},
	}
	if samples > 0 {
		attrs = append(attrs,
			[2]int{int(sdl.GL_MULTISAMPLEBUFFERS), 1},
			[2]int{int(sdl.GL_MULTISAMPLESAMPLES), samples},
		)
	}
	return attrs
}

// New initialises SDL video, opens the window and makes its GL context current.
func New(cfg Config) (w *Window, err error) {
	log := logger.Named("window")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("init SDL: %w", err)
	}
	w = &Window{log: log}
	defer func() {
		if err != nil {
			w.Close()
			w = nil
		}
	}()

	for _, a := range glAttributes(cfg.Samples) {
		if err := sdl.GLSetAttribute(sdl.GLattr(a[0]), a[1]); err != nil {
			log.Warn("GL attribute rejected", zap.Int("attr", a[0]), zap.Int("value", a[1]), zap.Error(err))
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	w.sdl, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w.ctx, err = w.sdl.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("create GL context: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}

	drawW, drawH := w.DrawableSize()
	log.Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", drawW),
		zap.Int("drawable_height", drawH),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

// Close releases the context and window and shuts SDL down. Safe on a
// partially opened window.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
		w.ctx = nil
	}
	if w.sdl != nil {
		w.sdl.Destroy()
		w.sdl = nil
	}
	sdl.Quit()
	w.log.Debug("window closed")
}

func (w *Window) SwapBuffers() {
	w.sdl.GLSwap()
}

// Size is the window size in screen coordinates, the space pointer events use.
func (w *Window) Size() (int, int) {
	width, height := w.sdl.GetSize()
	return int(width), int(height)
}

// DrawableSize is the framebuffer size in pixels. Larger than Size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdl.GLGetDrawableSize()
	return int(width), int(height)
}
