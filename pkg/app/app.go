// Package app runs a windowed application as a stack of states on top of an
// entity world and an event bus. The window, input polling and the frame loop
// come from ebiten, everything else is forwarded to the active state.
package app

import (
	"context"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/glasskit/glasskit/pkg/bus"
	"github.com/glasskit/glasskit/pkg/ecs"
)

// Drawer is implemented by states that render. States without it still
// update, they just draw nothing.
type Drawer interface {
	Draw(c *Context, screen *ebiten.Image)
}

// App owns the window and drives a state machine once per frame.
type App struct {
	cfg     Config
	machine *StateMachine
	appCtx  *Context
	runCtx  context.Context
	pub     *bus.Publisher[Event]

	keys []Key
}

type Option func(*App)

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.appCtx.Logger = logger
	}
}

// WithWorld replaces the empty world the app creates by default.
func WithWorld(world *ecs.World) Option {
	return func(a *App) {
		a.appCtx.World = world
	}
}

func New(cfg Config, initial State, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	events := bus.New[Event]()
	if err := events.AddChannel(EventChannel); err != nil {
		return nil, errors.Wrap(err, "unable to add app channel")
	}

	a := &App{
		cfg:     cfg,
		machine: NewStateMachine(initial),
		appCtx: &Context{
			World:  ecs.NewWorld(),
			Events: events,
			Logger: slog.Default(),
			Width:  cfg.Width,
			Height: cfg.Height,
		},
		runCtx: context.Background(),
		pub:    bus.NewPublisher(events, EventChannel),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Context exposes the shared state context, mostly so callers can seed the
// world before Run.
func (a *App) Context() *Context {
	return a.appCtx
}

// Run opens the window and blocks until the state machine quits, the window
// is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.runCtx = ctx

	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetFullscreen(a.cfg.Fullscreen)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if a.cfg.Icon != "" {
		icon, err := loadIcon(a.cfg.Icon)
		if err != nil {
			return err
		}
		ebiten.SetWindowIcon([]image.Image{icon})
	}

	if err := a.machine.Start(ctx, a.appCtx); err != nil {
		return errors.Wrap(err, "unable to start state machine")
	}

	runErr := ebiten.RunGame(a)
	if runErr != nil && errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}

	if err := a.machine.Stop(ctx, a.appCtx); err != nil {
		a.appCtx.Logger.Warn("unable to stop state machine", "error", err)
	}

	return errors.Wrap(runErr, "game loop failed")
}

// Update implements ebiten.Game. It forwards input to the active state, runs
// one frame and terminates the loop once the machine stops running.
func (a *App) Update() error {
	ctx := a.runCtx
	if ctx.Err() != nil {
		return ebiten.Termination
	}

	if err := a.forwardInput(ctx); err != nil {
		return err
	}

	if err := a.machine.Update(ctx, a.appCtx); err != nil {
		return errors.Wrap(err, "unable to update state machine")
	}

	if !a.machine.IsRunning() {
		a.pub.TryPublish("quit", Event{Kind: EventQuit})
		return ebiten.Termination
	}

	return nil
}

// Draw implements ebiten.Game, rendering the active state if it draws.
func (a *App) Draw(screen *ebiten.Image) {
	active, err := a.machine.active()
	if err != nil {
		return
	}

	if drawer, ok := active.(Drawer); ok {
		drawer.Draw(a.appCtx, screen)
	}
}

// Layout implements ebiten.Game. The logical size follows the window, and
// size changes are forwarded as resize events.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.appCtx.Width || outsideHeight != a.appCtx.Height {
		a.appCtx.Width = outsideWidth
		a.appCtx.Height = outsideHeight

		a.pub.TryPublish("resize", Event{
			Kind:   EventResized,
			Width:  outsideWidth,
			Height: outsideHeight,
		})
		if err := a.machine.Resize(a.runCtx, a.appCtx, outsideWidth, outsideHeight); err != nil {
			a.appCtx.Logger.Warn("unable to resize state machine", "error", err)
		}
	}

	return a.appCtx.Width, a.appCtx.Height
}

func (a *App) forwardInput(ctx context.Context) error {
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, key := range a.keys {
		if err := a.machine.Key(ctx, a.appCtx, key, true); err != nil {
			return errors.Wrap(err, "unable to forward key press")
		}
	}

	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, key := range a.keys {
		if err := a.machine.Key(ctx, a.appCtx, key, false); err != nil {
			return errors.Wrap(err, "unable to forward key release")
		}
	}

	for button := ebiten.MouseButton(0); button <= ebiten.MouseButtonMax; button++ {
		if inpututil.IsMouseButtonJustPressed(button) {
			if err := a.machine.Mouse(ctx, a.appCtx, button, true); err != nil {
				return errors.Wrap(err, "unable to forward mouse press")
			}
		}
		if inpututil.IsMouseButtonJustReleased(button) {
			if err := a.machine.Mouse(ctx, a.appCtx, button, false); err != nil {
				return errors.Wrap(err, "unable to forward mouse release")
			}
		}
	}

	return a.forwardDroppedFiles(ctx)
}

func (a *App) forwardDroppedFiles(ctx context.Context) error {
	dropped := ebiten.DroppedFiles()
	if dropped == nil {
		return nil
	}

	entries, err := fs.ReadDir(dropped, ".")
	if err != nil {
		return errors.Wrap(err, "unable to read dropped files")
	}

	for _, entry := range entries {
		a.pub.TryPublish("file", Event{Kind: EventFileDropped, Path: entry.Name()})
		if err := a.machine.FileDropped(ctx, a.appCtx, entry.Name()); err != nil {
			return errors.Wrap(err, "unable to forward dropped file")
		}
	}

	return nil
}

func loadIcon(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open icon %s", name)
	}
	defer file.Close()

	icon, err := png.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode icon %s", name)
	}

	return icon, nil
}

var _ ebiten.Game = (*App)(nil)
