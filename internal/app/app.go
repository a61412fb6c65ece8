// Package app hosts the globe viewer: window, input, renderer and frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/engine/input"
	"github.com/Faultbox/midgard-globe/internal/engine/renderer"
	"github.com/Faultbox/midgard-globe/internal/engine/window"
	"github.com/Faultbox/midgard-globe/internal/globe"
	"github.com/Faultbox/midgard-globe/internal/logger"
)

// maxFrameDelta caps the step after a stall (window drag, breakpoint) so a
// transition does not jump to its end in one frame.
const maxFrameDelta = 100 * time.Millisecond

// App is the running viewer.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	driver   *globe.Driver
}

// New creates the window, uploads the scene and wires the frame driver.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Midgard Globe",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	scene := NewScene(cfg)
	width, height := a.window.Size()
	scene.Camera.SetViewport(width, height)

	drawW, drawH := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:       drawW,
		Height:      drawH,
		GlobeRadius: cfg.Globe.Radius,
		GridStep:    15,
		MarkerSize:  8,
	}, scene.Markers.Markers())
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	// Presenting is part of rendering a frame; the driver sees one step.
	a.driver = NewDriver(cfg, scene, globe.RendererFunc(func(f *globe.Frame) error {
		if err := a.renderer.Render(f); err != nil {
			return err
		}
		a.window.SwapBuffers()
		return nil
	}))

	logger.Info("viewer initialized", zap.Int("markers", scene.Markers.Len()))
	return a, nil
}

// Run drives one frame per display refresh until the window closes.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents(a.input.Events())

		if err := a.driver.Tick(dt); err != nil {
			return fmt.Errorf("frame %d: %w", a.driver.Frames(), err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Stringer("state", a.driver.Engine().State()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents(events []input.Event) {
	for _, event := range events {
		switch event.Type {
		case input.EventWindowResize:
			a.driver.Resize(event.Width, event.Height)
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventPointerDown:
			a.driver.PointerDown(event.X, event.Y, PointerButton(event.Button))
		case input.EventPointerMove:
			if event.Button == input.ButtonLeft {
				a.driver.PointerDrag(event.DX, event.DY)
			}
		case input.EventWheel:
			a.driver.Wheel(event.Wheel)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_R:
				a.driver.Reset()
			}
		}
	}
}

// Close releases the renderer and window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
