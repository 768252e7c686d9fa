package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/cwbudde/algo-vis/control"
)

// Source prepares a Scene for the time elapsed since the previous one.
type Source interface {
	Next(elapsed time.Duration) Scene
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithTitle sets the window title.
func WithTitle(title string) WindowOption {
	return func(w *Window) { w.title = title }
}

// WithOverlay shows the HUD at startup.
func WithOverlay(on bool) WindowOption {
	return func(w *Window) { w.overlay = on }
}

// WithWindowLogger sets the logger. slog.Default is used otherwise.
func WithWindowLogger(l *slog.Logger) WindowOption {
	return func(w *Window) {
		if l != nil {
			w.log = l
		}
	}
}

// Window is the ebiten game showing the grid.
type Window struct {
	src    Source
	store  *control.Store
	raster *Raster
	frame  *ebiten.Image
	scene  Scene

	title   string
	overlay bool
	log     *slog.Logger

	now  func() time.Time
	last time.Time
}

// NewWindow builds a width x height window quartered depth times.
func NewWindow(src Source, store *control.Store, width, height, depth int, opts ...WindowOption) (*Window, error) {
	r, err := NewRaster(width, height, depth)
	if err != nil {
		return nil, err
	}
	w := &Window{
		src:    src,
		store:  store,
		raster: r,
		title:  "huegrid",
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func (w *Window) Run() error {
	b := w.raster.Image().Bounds()
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowTitle(w.title)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	w.last = w.now()
	w.log.Info("window opened", "width", b.Dx(), "height", b.Dy(), "cells", len(w.raster.Cells()))

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("render: run window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	keys := ReadKeys()
	if keys.Quit || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if keys.ToggleOverlay {
		w.overlay = !w.overlay
	}
	keys.Apply(w.store)

	now := w.now()
	elapsed := now.Sub(w.last)
	w.last = now
	w.scene = w.src.Next(elapsed)
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.scene == nil {
		return
	}
	if w.frame == nil {
		b := w.raster.Image().Bounds()
		w.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}

	RenderScene(w.raster, w.scene, w.overlay)
	w.frame.WritePixels(w.raster.Image().Pix)
	screen.DrawImage(w.frame, nil)

	if w.overlay {
		hud := w.scene.HUD()
		hud.FPS = ebiten.ActualFPS()
		ebitenutil.DebugPrint(screen, strings.Join(hud.Lines(), "\n"))
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	b := w.raster.Image().Bounds()
	return b.Dx(), b.Dy()
}
