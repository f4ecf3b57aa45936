// crystal-demo is a minimal pong built on the engine: two paddles, a
// ball and a score overlay, exercising the model and GUI lifecycles.
package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/crystal/internal/config"
	"github.com/Faultbox/crystal/internal/engine/gui"
	"github.com/Faultbox/crystal/internal/engine/lighting"
	"github.com/Faultbox/crystal/internal/engine/model"
	"github.com/Faultbox/crystal/internal/game"
	"github.com/Faultbox/crystal/internal/logger"
	"github.com/Faultbox/crystal/pkg/math"
)

const (
	paddleSpeed = 0.05
	fieldHalfH  = 2.0
	fieldHalfW  = 3.0
)

type pong struct {
	leftPaddle  *model.Handle
	rightPaddle *model.Handle
	ball        *model.Handle

	ballVel math.Vec3
	moving  bool

	leftScore  int
	rightScore int
	leftText   *gui.Element
	rightText  *gui.Element
}

func (p *pong) Init(state *game.State) {
	state.Camera = math.LookAt(
		math.Vec3{Z: 6},
		math.Vec3{},
		math.Vec3{Y: 1},
	)
	state.Lights.AddDirectional(lighting.Sun(45, 60))

	var err error
	p.leftPaddle, err = state.NewRectangle().
		WithPosition(math.Vec3{X: -fieldHalfW}).
		WithScale(0.8).
		WithFallbackColor(1, 1, 1).
		Build()
	fatalIf(err)

	// The right paddle is the same model, just moved.
	p.rightPaddle = p.leftPaddle.Clone()
	p.rightPaddle.Modify(func(d *model.Data) { d.Position.X = fieldHalfW })

	p.ball, err = state.NewTriangle().
		WithScale(0.25).
		WithFallbackColor(1, 0.3, 0.3).
		Build()
	fatalIf(err)

	p.leftText = buildScore(state, 100)
	p.rightText = buildScore(state, 600)
}

func buildScore(state *game.State, x int32) *gui.Element {
	e, err := state.NewGuiElement(gui.Dimensions{X: x, Y: 40, W: 100, H: 60}).
		WithCanvas(scoreCanvas(0)).
		Build()
	fatalIf(err)
	return e
}

func scoreCanvas(score int) gui.Canvas {
	return gui.Canvas{
		Background: color.RGBA{R: 20, G: 20, B: 30, A: 200},
		Border:     &gui.Border{Color: color.RGBA{R: 200, G: 200, B: 200, A: 255}, Width: 2},
		Text:       &gui.Text{Value: strconv.Itoa(score), Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
}

func (p *pong) Update(state *game.State) {
	if state.Keyboard.IsPressed(sdl.SCANCODE_W) {
		p.movePaddle(p.leftPaddle, paddleSpeed)
	}
	if state.Keyboard.IsPressed(sdl.SCANCODE_S) {
		p.movePaddle(p.leftPaddle, -paddleSpeed)
	}
	if state.Keyboard.IsPressed(sdl.SCANCODE_I) {
		p.movePaddle(p.rightPaddle, paddleSpeed)
	}
	if state.Keyboard.IsPressed(sdl.SCANCODE_K) {
		p.movePaddle(p.rightPaddle, -paddleSpeed)
	}
	if state.Keyboard.IsPressed(sdl.SCANCODE_SPACE) && !p.moving {
		p.moving = true
		p.ballVel = math.Vec3{X: 0.04, Y: 0.025}
	}
	if state.Keyboard.IsPressed(sdl.SCANCODE_ESCAPE) {
		state.Terminate()
	}

	p.stepBall(state)
}

func (p *pong) movePaddle(h *model.Handle, dy float32) {
	h.Modify(func(d *model.Data) {
		d.Position.Y += dy
		if d.Position.Y > fieldHalfH {
			d.Position.Y = fieldHalfH
		}
		if d.Position.Y < -fieldHalfH {
			d.Position.Y = -fieldHalfH
		}
	})
}

func (p *pong) stepBall(state *game.State) {
	if !p.moving {
		return
	}

	p.ball.Translate(p.ballVel)
	pos := p.ball.Position()

	if pos.Y > fieldHalfH || pos.Y < -fieldHalfH {
		p.ballVel.Y = -p.ballVel.Y
	}

	// Paddle hits flip the ball; misses score for the other side.
	switch {
	case pos.X < -fieldHalfW && p.nearPaddle(p.leftPaddle, pos):
		p.ballVel.X = -p.ballVel.X
	case pos.X > fieldHalfW && p.nearPaddle(p.rightPaddle, pos):
		p.ballVel.X = -p.ballVel.X
	case pos.X < -fieldHalfW-0.5:
		p.score(state, false)
	case pos.X > fieldHalfW+0.5:
		p.score(state, true)
	}
}

func (p *pong) nearPaddle(paddle *model.Handle, ball math.Vec3) bool {
	return absf(paddle.Position().Y-ball.Y) < 0.6
}

func (p *pong) score(state *game.State, left bool) {
	p.moving = false
	p.ball.Modify(func(d *model.Data) { d.Position = math.Vec3{} })

	element, score := p.rightText, &p.rightScore
	if left {
		element, score = p.leftText, &p.leftScore
	}
	*score++
	fatalIf(element.UpdateCanvas(scoreCanvas(*score)))
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func fatalIf(err error) {
	if err != nil {
		logger.Sugar.Fatalf("demo setup failed: %v", err)
	}
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	runner, err := game.NewRunner("crystal pong", cfg)
	if err != nil {
		logger.Sugar.Fatalf("startup failed: %v", err)
	}
	defer runner.Close()

	runner.Run(&pong{})
}
