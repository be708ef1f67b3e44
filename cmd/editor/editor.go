package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/glasskit/glasskit/pkg/app"
	"github.com/glasskit/glasskit/pkg/bus"
	"github.com/glasskit/glasskit/pkg/ecs"
	"github.com/glasskit/glasskit/pkg/profile"
	"github.com/glasskit/glasskit/pkg/scene"
)

// transform places an entity on screen. Orbit is the angle around the screen
// centre, spin the angle of the entity itself.
type transform struct {
	Orbit  float64
	Spin   float64
	Radius float64
}

type spin struct {
	OrbitSpeed float64 // radians per second
	SpinSpeed  float64
}

type material struct {
	Color color.RGBA
}

// frameTime is the world resource carrying the wall-clock delta of the
// current frame.
type frameTime struct {
	Delta float64 // seconds
}

var palette = []string{"#e63946", "#f4a261", "#2a9d8f", "#264653", "#e9c46a", "#8338ec"}

// Editor is the default scene: a ring of spinning coloured quads, driven by
// a schedule and mirrored into a scene graph.
type Editor struct {
	app.BaseState

	sceneDOT string

	schedule *ecs.Schedule
	measure  profile.Measure
	graph    *scene.Graph[string]
	sub      *bus.Subscriber[app.Event]
	lastTick time.Time
}

func NewEditor(sceneDOT string) *Editor {
	return &Editor{
		sceneDOT: sceneDOT,
		measure:  profile.NewDefaultMeasure(),
	}
}

func (e *Editor) Label() string { return "editor" }

func (e *Editor) OnStart(_ context.Context, c *app.Context) error {
	world := c.World
	ecs.Register[transform](world)
	ecs.Register[spin](world)
	ecs.Register[material](world)
	ecs.SetResource(world, frameTime{})

	e.graph = scene.New[string]()
	root := e.graph.AddNode("root")

	for i, hex := range palette {
		clr, err := colors.Parse(hex)
		if err != nil {
			return errors.Wrapf(err, "unable to parse palette colour %s", hex)
		}
		rgb := clr.ToRGB()

		entity := world.CreateEntity()
		if err := ecs.Add(world, entity, transform{
			Orbit:  2 * math.Pi * float64(i) / float64(len(palette)),
			Radius: 0.3,
		}); err != nil {
			return err
		}
		if err := ecs.Add(world, entity, spin{
			OrbitSpeed: 0.4,
			SpinSpeed:  1.5 + 0.3*float64(i),
		}); err != nil {
			return err
		}
		if err := ecs.Add(world, entity, material{
			Color: color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255},
		}); err != nil {
			return err
		}

		node := e.graph.AddNode(hex)
		if err := e.graph.AddEdge(root, node, i+1); err != nil {
			return err
		}
	}

	if e.sceneDOT != "" {
		err := e.graph.ExportDOT(e.sceneDOT,
			scene.DOTLabel(func(_ int64, data string) string { return data }),
			scene.DOTHeat[string](),
		)
		if err != nil {
			return err
		}
		c.Logger.Info("scene graph exported", "path", e.sceneDOT)
	}

	e.schedule = ecs.NewSchedule(ecs.ScheduleMeasure(e.measure))
	if err := e.schedule.AddSystem("spin", spinSystem); err != nil {
		return err
	}
	if err := e.schedule.AddSystem("wrap", wrapSystem, ecs.After("spin")); err != nil {
		return err
	}

	e.sub = bus.NewSubscriber(c.Events, app.EventChannel)
	e.lastTick = time.Now()
	c.Logger.Info("editor started", "entities", len(palette))

	return nil
}

func (e *Editor) Update(ctx context.Context, c *app.Context) (app.Transition, error) {
	now := time.Now()
	delta := now.Sub(e.lastTick).Seconds()
	e.lastTick = now
	ecs.SetResource(c.World, frameTime{Delta: delta})

	for {
		env, ok := e.sub.TryNext()
		if !ok {
			break
		}
		switch env.Payload.Kind {
		case app.EventResized:
			c.Logger.Info("resized", "width", env.Payload.Width, "height", env.Payload.Height)
		case app.EventFileDropped:
			c.Logger.Info("file dropped", "path", env.Payload.Path)
		case app.EventQuit:
			return app.Quit(), nil
		}
	}

	if err := e.schedule.Run(ctx, c.World); err != nil {
		return app.None(), errors.Wrap(err, "unable to run editor schedule")
	}

	return app.None(), nil
}

func (e *Editor) OnKey(_ context.Context, c *app.Context, key app.Key, pressed bool) (app.Transition, error) {
	if pressed && key == ebiten.KeyEscape {
		c.Logger.Info("escape pressed, quitting")
		return app.Quit(), nil
	}

	return app.None(), nil
}

func (e *Editor) OnStop(_ context.Context, c *app.Context) error {
	for name, metric := range e.measure.AllMetrics() {
		c.Logger.Info("system timing",
			"system", name,
			"frames", metric.Count(),
			"avg", metric.AVGDuration(),
		)
	}

	return nil
}

func (e *Editor) Draw(c *app.Context, screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 32, A: 255})

	centerX := float64(c.Width) / 2
	centerY := float64(c.Height) / 2
	orbit := math.Min(centerX, centerY)

	err := ecs.Each2(c.World, func(_ ecs.Entity, t *transform, m *material) error {
		x := centerX + t.Radius*orbit*math.Cos(t.Orbit)
		y := centerY + t.Radius*orbit*math.Sin(t.Orbit)
		size := 30 + 12*math.Sin(t.Spin)

		vector.DrawFilledRect(screen,
			float32(x-size/2), float32(y-size/2),
			float32(size), float32(size),
			m.Color, true)

		return nil
	})
	if err != nil {
		c.Logger.Warn("unable to draw entities", "error", err)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("entities: %d  nodes: %d", len(palette), e.graph.Len()), 8, 8)
}

func spinSystem(_ context.Context, w *ecs.World) error {
	dt, ok := ecs.Resource[frameTime](w)
	if !ok {
		return nil
	}

	return ecs.Each2(w, func(_ ecs.Entity, t *transform, s *spin) error {
		t.Orbit += s.OrbitSpeed * dt.Delta
		t.Spin += s.SpinSpeed * dt.Delta
		return nil
	})
}

// wrapSystem keeps angles within one full turn.
func wrapSystem(_ context.Context, w *ecs.World) error {
	return ecs.Each(w, func(_ ecs.Entity, t *transform) error {
		t.Orbit = math.Mod(t.Orbit, 2*math.Pi)
		t.Spin = math.Mod(t.Spin, 2*math.Pi)
		return nil
	})
}
