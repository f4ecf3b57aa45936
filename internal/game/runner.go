package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/crystal/internal/config"
	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/input"
	"github.com/Faultbox/crystal/internal/engine/renderer"
	"github.com/Faultbox/crystal/internal/engine/window"
	"github.com/Faultbox/crystal/internal/logger"
)

// Runner owns the window, the GL device and the frame loop. One frame
// is: pump events, run the game's update, drain the registries, render,
// swap.
type Runner struct {
	cfg      *config.Config
	window   *window.Window
	device   gpu.Device
	renderer *renderer.Renderer
	input    *input.Input
	state    *State
}

// NewRunner opens the window, initializes the GL device and prepares
// the game state.
func NewRunner(title string, cfg *config.Config) (*Runner, error) {
	win, err := window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	device, err := gpu.NewGLDevice()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("initializing GL device: %w", err)
	}

	return &Runner{
		cfg:      cfg,
		window:   win,
		device:   device,
		renderer: renderer.New(device),
		input:    input.New(),
		state:    NewState(device, cfg.Assets.Root),
	}, nil
}

// State returns the game state, mostly for tests and tools. Games get
// it through their callbacks.
func (r *Runner) State() *State { return r.state }

// Run drives the frame loop until the game terminates or the window is
// closed. It must be called from the main thread.
func (r *Runner) Run(g Game) {
	r.state.start()
	g.Init(r.state)

	var frameBudget time.Duration
	if r.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(r.cfg.Graphics.FPSLimit)
	}

	logger.Info("entering frame loop", zap.Int("fps_limit", r.cfg.Graphics.FPSLimit))

	for r.state.Running() {
		frameStart := time.Now()

		quit := r.input.Update()
		r.dispatchEvents(g)
		if quit && r.confirmShutdown(g) {
			r.state.Terminate()
		}

		g.Update(r.state)

		r.state.Drain()

		w, h := r.window.GetSize()
		r.renderer.Frame(int32(w), int32(h), r.state.Camera, r.state.Lights, r.state.Models(), r.state.GUI())
		r.window.SwapBuffers()

		if frameBudget > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}

	logger.Info("frame loop ended")
}

// Close releases the device and the window.
func (r *Runner) Close() {
	r.device.Destroy()
	r.window.Close()
}

func (r *Runner) dispatchEvents(g Game) {
	keys, _ := g.(KeyHandler)
	for _, e := range r.input.Events() {
		switch e.Type {
		case input.EventKeyDown:
			r.state.Keyboard.press(e.Key)
			if keys != nil {
				keys.Keydown(r.state, e.Key)
			}
		case input.EventKeyUp:
			r.state.Keyboard.release(e.Key)
			if keys != nil {
				keys.Keyup(r.state, e.Key)
			}
		}
	}
}

func (r *Runner) confirmShutdown(g Game) bool {
	if guard, ok := g.(ShutdownGuard); ok {
		return guard.CanShutdown(r.state)
	}
	return true
}
