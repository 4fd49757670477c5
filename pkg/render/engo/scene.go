// pkg/render/engo/scene.go
package engo

import (
	"context"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
)

// GameScene plays one session in an engo window. Engo's frame clock drives
// the ticks, so the window should run with FPSLimit set to the tick rate.
type GameScene struct {
	// Autopilot, when set, flies the ship instead of the keyboard.
	Autopilot engine.InputSource

	session *engine.Session
	logger  *logging.Logger
	assets  *AssetManager
	opts    []engine.RunnerOption

	world    *ecs.World
	renderer *EngoRenderer
	input    *InputSystem
	driver   *sessionSystem
}

// NewGameScene creates a scene for session. opts are applied to the runner
// built during Setup.
func NewGameScene(session *engine.Session, logger *logging.Logger, opts ...engine.RunnerOption) *GameScene {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &GameScene{
		session: session,
		logger:  logger,
		assets:  NewAssetManager(),
		opts:    opts,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GravityVortex"
}

// Preload registers the embedded font (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.LoadFont(); err != nil {
		scene.logger.Error(scene.session.Context(), "font unavailable, text disabled", err)
	}
}

// Setup builds the world: background, render system, input and the session
// driver (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	scene.world = world
	ctx := scene.session.Context()

	common.SetBackground(scene.assets.Palette.Background)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	font, err := scene.assets.Font(hudFontSize)
	if err != nil {
		scene.logger.Warn(ctx, "no HUD font", "error", err.Error())
	}

	bounds := scene.session.Snapshot().Bounds
	bg := &sprite{BasicEntity: ecs.NewBasic()}
	bg.Drawable = scene.assets.Background(int(bounds.Width), int(bounds.Height), scene.session.Config.Session.Seed)
	bg.Width, bg.Height = float32(bounds.Width), float32(bounds.Height)
	bg.SetZIndex(zBackground)
	renderSystem.Add(&bg.BasicEntity, &bg.RenderComponent, &bg.SpaceComponent)

	scene.renderer = NewEngoRenderer(renderSystem, scene.assets.Palette, font)
	scene.input = NewInputSystem()
	world.AddSystem(scene.input)

	var source engine.InputSource = scene.input
	if scene.Autopilot != nil {
		source = scene.Autopilot
	}
	runner := engine.NewRunner(scene.session, source, scene.renderer, scene.opts...)
	scene.driver = newSessionSystem(runner, engo.Exit)
	world.AddSystem(scene.driver)

	scene.logger.Info(ctx, "scene ready", "width", bounds.Width, "height", bounds.Height)
}

// Exit ends the session if the window is closed mid-game
func (scene *GameScene) Exit() {
	scene.session.Quit()
	scene.logger.Info(context.Background(), "window closed", "session_id", scene.session.ID)
}

// Result returns the session outcome
func (scene *GameScene) Result() engine.Result {
	return scene.session.Result()
}

// sessionSystem advances the runner one tick per frame, then holds the
// game-over view for the runner's GameOverDelay and calls exit.
type sessionSystem struct {
	runner *engine.Runner
	exit   func()

	over   bool
	held   time.Duration
	exited bool
}

func newSessionSystem(runner *engine.Runner, exit func()) *sessionSystem {
	return &sessionSystem{runner: runner, exit: exit}
}

// Update satisfies ecs.System
func (s *sessionSystem) Update(dt float32) {
	switch {
	case s.exited:
		return
	case !s.over:
		if !s.runner.Tick() {
			s.runner.ShowGameOver()
			s.over = true
		}
	default:
		s.held += time.Duration(float64(dt) * float64(time.Second))
		if s.held >= s.runner.GameOverDelay {
			s.exited = true
			s.exit()
		}
	}
}

// Remove satisfies ecs.System
func (s *sessionSystem) Remove(basic ecs.BasicEntity) {}

var _ entity.Renderer = (*EngoRenderer)(nil)
