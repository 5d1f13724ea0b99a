package warpfx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	progressTweenSeconds = 1.5
	cameraResetSeconds   = 0.6
	closeTimeout         = 10 * time.Second
)

// App wires a Scene of textured quads, the animation Loop and the
// Composer into an ebiten.Game.
type App struct {
	cfg      Config
	scene    *Scene
	params   *ParamSource
	template *Material
	quads    []*Node
	effect   *DistortionFilter
	shift    *RGBShiftFilter
	composer *Composer
	loop     *Loop
	tweens   tweenSet
	controls *Controls
	runner   *TestRunner
	recorder *Recorder
	hud      hud

	showHUD         bool
	screenshotQueue []string
	actions         []Action
	width, height   int
	quit            bool
}

// NewApp builds the scene, pipeline and loop described by cfg with one quad
// per texture.
func NewApp(cfg Config, textures []*ebiten.Image) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("warpfx: new app: %w", err)
	}
	bg, _ := ParseHexColor(cfg.ClearColor)

	a := &App{
		cfg:     cfg,
		scene:   NewScene(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		params:  NewParamSource(cfg.Params),
		effect:  NewDistortionFilter(cfg.Params),
		showHUD: cfg.ShowHUD,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	a.scene.ClearColor = bg
	a.scene.SetDebugMode(cfg.Debug)
	a.applyCameraConfig(cfg.Camera)

	a.template = NewMaterial(QuadProgram())
	quads, err := BuildQuads(a.scene, a.template, textures, DefaultPlaneGeometry)
	if err != nil {
		return nil, fmt.Errorf("warpfx: new app: %w", err)
	}
	a.quads = quads

	passes := []Pass{
		NewRenderPass(a.scene),
		NewShaderPass("distortion", a.effect),
	}
	if cfg.RGBShift > 0 {
		a.shift = NewRGBShiftFilter(cfg.RGBShift)
		passes = append(passes, NewShaderPass("rgbshift", a.shift))
	}
	a.composer = NewComposer(cfg.Width, cfg.Height, passes...)
	a.loop = NewLoop(a.params, a.template, a.quads, a.effect, cfg.ClockStep)
	if cfg.Controls {
		a.controls = NewControls()
	}

	Logger().Info("app ready", "quads", len(quads), "passes", len(passes),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return a, nil
}

func (a *App) applyCameraConfig(cc CameraConfig) {
	cam := a.scene.Camera()
	cam.Position = cc.Position
	cam.Target = cc.Target
	cam.FOV = cc.FOV
	cam.Near = cc.Near
	cam.Far = cc.Far
	cam.MarkDirty()
}

// Scene returns the app's scene.
func (a *App) Scene() *Scene { return a.scene }

// Params returns the live parameter source.
func (a *App) Params() *ParamSource { return a.params }

// Loop returns the animation loop.
func (a *App) Loop() *Loop { return a.loop }

// Composer returns the composition pipeline.
func (a *App) Composer() *Composer { return a.composer }

// Quads returns the quads in texture order.
func (a *App) Quads() []*Node { return a.quads }

// SetRecorder attaches a recorder; every drawn frame is captured until it
// is full, after which the app quits.
func (a *App) SetRecorder(r *Recorder) {
	a.recorder = r
}

// Apply executes one control-panel action.
func (a *App) Apply(act Action) {
	switch act.Kind {
	case ActionNudge:
		a.params.Update(func(p Params) Params { return NudgeParam(p, act.Param, act.Steps) })
	case ActionTogglePause:
		a.loop.Toggle()
	case ActionTweenProgress:
		to := 1.0
		if a.params.Load().Progress >= 0.5 {
			to = 0
		}
		a.tweens.start(TweenParam(a.params, ParamProgress, to, progressTweenSeconds, ease.InOutQuad))
	case ActionScreenshot:
		a.Screenshot(act.Label)
	case ActionToggleHUD:
		a.showHUD = !a.showHUD
		a.hud.ticks = 0
	case ActionResetParams:
		a.params.Store(a.cfg.Params)
	case ActionResetCamera:
		a.scene.Camera().MoveTo(a.cfg.Camera.Position, cameraResetSeconds, ease.OutCubic)
	case ActionQuit:
		a.quit = true
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}
	dt := float32(1 / float64(ebiten.TPS()))

	if a.runner != nil {
		a.runner.step(a)
	}
	if a.controls != nil {
		a.actions = a.controls.poll(a.actions[:0])
		for _, act := range a.actions {
			a.Apply(act)
		}
		a.controls.pointer(a.scene.Camera())
	}
	a.tweens.update(dt)
	a.scene.Camera().update(dt)
	a.loop.Tick()
	if a.showHUD {
		a.hud.update(a)
	}

	if a.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. Screenshots and recorded frames are taken
// before the HUD is drawn.
func (a *App) Draw(screen *ebiten.Image) {
	a.composer.Render(screen)
	a.flushScreenshots(screen)
	a.captureFrame(screen)
	if a.showHUD {
		a.hud.draw(screen)
	}
}

func (a *App) captureFrame(screen *ebiten.Image) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Capture(screen); err != nil {
		Logger().Error("recording stopped", "err", err)
		a.stopRecording()
		return
	}
	if a.recorder.Full() {
		Logger().Info("recording complete", "frames", a.recorder.Frames())
		a.quit = true
	}
}

func (a *App) stopRecording() {
	if a.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.recorder.Close(ctx); err != nil && !errors.Is(err, ErrRecorderClosed) {
		Logger().Error("recorder close failed", "err", err)
	}
	a.recorder = nil
}

// Layout implements ebiten.Game. A new outside size updates the camera
// aspect ratio and the composer's buffers.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != a.width || h != a.height {
		a.Resize(w, h)
	}
	return w, h
}

// Resize sets the render size.
func (a *App) Resize(w, h int) {
	a.width, a.height = w, h
	a.scene.Camera().SetViewport(Rect{Width: float64(w), Height: float64(h)})
	a.composer.SetSize(w, h)
}

// Close finishes any recording and releases the offscreen buffers.
func (a *App) Close(ctx context.Context) error {
	var err error
	if a.recorder != nil {
		err = a.recorder.Close(ctx)
		a.recorder = nil
	}
	a.composer.Dispose()
	return err
}

// RunConfig holds optional settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int
	Resizable bool
}

// RunConfigFrom copies the window settings out of cfg.
func RunConfigFrom(cfg Config) RunConfig {
	return RunConfig{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		TPS:       cfg.TPS,
		Resizable: cfg.Resizable && cfg.Record.Output == "",
	}
}

// Run opens a window and runs app until it quits or the window closes,
// then closes the app.
func Run(app *App, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err := ebiten.RunGame(app)
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return errors.Join(err, app.Close(ctx))
}
