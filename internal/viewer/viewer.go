// Package viewer is the interactive Gio window behind `otl view`.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/document"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// Options configures a viewer App.
type Options struct {
	// Path is where Save writes the document. Empty disables saving.
	Path  string
	Theme render.ColorTheme
	// Save persists the document. Defaults to Document.SaveFile.
	Save func(path string, doc *document.Document) error
	// ThemeChanged is called after the user picks a theme from the menu.
	ThemeChanged func(render.ColorTheme)
}

// App is the viewer state. All fields are owned by the window goroutine.
type App struct {
	window *app.Window
	ops    op.Ops
	opts   Options

	doc    *document.Document
	camera *render.Camera
	fitted bool
	dirty  bool
	status string

	gvTheme  *theme.Theme
	cutIcon  *widget.Icon
	openIcon *widget.Icon
	saveIcon *widget.Icon

	fitBtn    widget.Clickable
	openBtn   widget.Clickable
	saveBtn   widget.Clickable
	themeBtn  widget.Clickable
	themeMenu *menu.DropdownMenu

	explorer *explorer.Explorer
	opened   chan openResult

	// canvasTag is the pointer target of the drawing area.
	canvasTag bool
	drag      dragState
}

type openResult struct {
	path string
	doc  *document.Document
	err  error
}

type dragState struct {
	target  component.Component
	grab    image.Point
	origin  []image.Point
	panning bool
	lastX   float32
	lastY   float32
}

// New creates a viewer for doc bound to window w.
func New(w *app.Window, doc *document.Document, opts Options) *App {
	if opts.Save == nil {
		opts.Save = saveFile
	}
	a := &App{
		window:   w,
		opts:     opts,
		doc:      doc,
		camera:   render.NewCamera(1000, 800),
		gvTheme:  theme.NewTheme("", nil, true),
		explorer: explorer.NewExplorer(w),
		opened:   make(chan openResult, 1),
	}
	a.cutIcon = makeIcon("cut", icons.ContentContentCut)
	a.openIcon = makeIcon("open", icons.FileFolderOpen)
	a.saveIcon = makeIcon("save", icons.ContentSave)
	a.applyPalette()
	a.themeMenu = a.buildThemeMenu()
	a.doc.SetPalette(render.PaletteFor(opts.Theme))
	return a
}

func makeIcon(name string, data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("viewer: failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

func saveFile(path string, doc *document.Document) error { return doc.SaveFile(path) }

// Run processes window events until the window is closed or the user quits.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			if a.handleKeys(gtx) {
				return nil
			}
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.drainOpened()
	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutHeader),
		layout.Flexed(1, a.layoutCanvas),
		layout.Rigid(a.layoutStatus),
	)
}

// handleKeys reports whether the user asked to quit.
func (a *App) handleKeys(gtx layout.Context) bool {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: "Q"},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: key.NameDeleteForward},
			key.Filter{Name: key.NameDeleteBackward},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "T"},
		)
		if !ok {
			return false
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape, "Q":
			return true
		case key.NameSpace:
			a.fitted = false
		case key.NameDeleteForward, key.NameDeleteBackward:
			a.removeSelection()
		case "S":
			a.save()
		case "T":
			a.toggleCutMode()
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) removeSelection() {
	for _, c := range a.doc.Selection() {
		if err := a.doc.Remove(c); err != nil {
			log.Printf("viewer: remove %s: %v", c.Name(), err)
			continue
		}
		a.dirty = true
		a.status = "Removed " + c.Name()
	}
}

// toggleCutMode flips every selected component exposing a boolean
// cutBetweenHoles property.
func (a *App) toggleCutMode() {
	for _, c := range a.doc.Selection() {
		table := c.Properties()
		v, err := table.Get(c, "cutBetweenHoles")
		if err != nil {
			continue
		}
		on, ok := v.(bool)
		if !ok {
			continue
		}
		if err := table.Set(c, "cutBetweenHoles", !on); err != nil {
			log.Printf("viewer: toggle %s: %v", c.Name(), err)
			continue
		}
		a.dirty = true
		a.status = fmt.Sprintf("%s: cut between holes = %t", c.Name(), !on)
	}
}

func (a *App) save() {
	if a.opts.Path == "" {
		a.status = "No file to save to"
		return
	}
	if err := a.opts.Save(a.opts.Path, a.doc); err != nil {
		log.Printf("viewer: save %s: %v", a.opts.Path, err)
		a.status = "Save failed: " + err.Error()
		return
	}
	a.dirty = false
	a.status = "Saved " + filepath.Base(a.opts.Path)
}

func (a *App) open() {
	go func() {
		file, err := a.explorer.ChooseFile("otl")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				a.opened <- openResult{err: err}
				a.window.Invalidate()
			}
			return
		}
		defer file.Close()
		res := openResult{}
		if f, ok := file.(*os.File); ok {
			res.path = f.Name()
		}
		res.doc, res.err = document.Load(file)
		a.opened <- res
		a.window.Invalidate()
	}()
}

func (a *App) drainOpened() {
	select {
	case res := <-a.opened:
		if res.err != nil {
			log.Printf("viewer: open: %v", res.err)
			a.status = "Open failed: " + res.err.Error()
			return
		}
		res.doc.SetPalette(a.doc.Palette())
		a.doc = res.doc
		a.opts.Path = res.path
		a.fitted = false
		a.dirty = false
		a.drag = dragState{}
		a.status = "Opened " + filepath.Base(res.path)
	default:
	}
}

func (a *App) setTheme(t render.ColorTheme) {
	a.opts.Theme = t
	a.doc.SetPalette(render.PaletteFor(t))
	a.applyPalette()
	a.themeMenu = a.buildThemeMenu()
	if a.opts.ThemeChanged != nil {
		a.opts.ThemeChanged(t)
	}
	a.status = "Theme " + t.String()
}

func (a *App) buildThemeMenu() *menu.DropdownMenu {
	themes := render.Themes()
	opts := make([]menu.MenuOption, 0, len(themes))
	for _, t := range themes {
		t := t
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.setTheme(t)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, t.String())
				if t == a.opts.Theme {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

func (a *App) layoutHeader(gtx layout.Context) layout.Dimensions {
	th := a.gvTheme.Theme
	if a.fitBtn.Clicked(gtx) {
		a.fitted = false
	}
	if a.openBtn.Clicked(gtx) {
		a.open()
	}
	if a.saveBtn.Clicked(gtx) {
		a.save()
	}
	if a.themeBtn.Clicked(gtx) {
		a.themeMenu.ToggleVisibility(gtx)
	}

	title := "OpenTraceLayout"
	if a.opts.Path != "" {
		title = filepath.Base(a.opts.Path)
	}
	if a.dirty {
		title += " *"
	}

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.cutIcon == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(24))
				return a.cutIcon.Layout(gtx, th.Palette.ContrastBg)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Flexed(1, material.H6(th, title).Layout),
			layout.Rigid(a.iconButton(&a.openBtn, a.openIcon, "Open")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(a.iconButton(&a.saveBtn, a.saveIcon, "Save")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(material.Button(th, &a.fitBtn, "Fit").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := material.Button(th, &a.themeBtn, "Theme: "+a.opts.Theme.String()).Layout(gtx)
				a.themeMenu.Layout(gtx, a.gvTheme)
				return dims
			}),
		)
	})
}

func (a *App) iconButton(btn *widget.Clickable, icon *widget.Icon, label string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		th := a.gvTheme.Theme
		if icon == nil {
			return material.Button(th, btn, label).Layout(gtx)
		}
		b := material.IconButton(th, btn, icon, label)
		b.Size = unit.Dp(20)
		b.Inset = layout.UniformInset(unit.Dp(6))
		return b.Layout(gtx)
	}
}

func (a *App) layoutStatus(gtx layout.Context) layout.Dimensions {
	text := a.status
	if text == "" {
		text = fmt.Sprintf("%d components  |  zoom %.0f%%", len(a.doc.Components()), a.camera.Zoom*100)
	}
	lbl := material.Caption(a.gvTheme.Theme, text)
	return layout.Inset{Left: unit.Dp(8), Top: unit.Dp(2), Bottom: unit.Dp(4)}.Layout(gtx, lbl.Layout)
}

func (a *App) layoutCanvas(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	a.camera.UpdateScreenSize(size.X, size.Y)
	if !a.fitted {
		a.camera.Fit(a.doc.Bounds())
		a.fitted = true
	}
	a.handlePointer(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, a.doc.Palette().Background)

	tr := op.Affine(a.camera.Affine()).Push(gtx.Ops)
	canvas := render.NewGioCanvas(gtx.Ops, a.camera.VisibleBounds())
	if err := a.doc.Draw(canvas); err != nil {
		log.Printf("viewer: draw: %v", err)
	}
	tr.Pop()

	event.Op(gtx.Ops, &a.canvasTag)
	return layout.Dimensions{Size: size}
}

func (a *App) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &a.canvasTag,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Scroll | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			return
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Scroll:
			if pe.Scroll.Y != 0 {
				factor := 1.0 - float64(pe.Scroll.Y)*0.1
				if factor < 0.5 {
					factor = 0.5
				}
				a.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
			}
		case pointer.Press:
			a.press(pe)
		case pointer.Drag:
			a.dragTo(pe)
		case pointer.Release, pointer.Cancel:
			a.release()
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) press(pe pointer.Event) {
	a.drag = dragState{lastX: pe.Position.X, lastY: pe.Position.Y}
	if !pe.Buttons.Contain(pointer.ButtonPrimary) {
		a.drag.panning = true
		return
	}
	p := a.camera.ScreenToPoint(float64(pe.Position.X), float64(pe.Position.Y))
	c, ok := a.doc.HitTest(p)
	if !ok {
		a.doc.Select()
		a.drag.panning = true
		a.status = ""
		return
	}
	a.doc.Select(c)
	a.status = c.Name()
	origin := make([]image.Point, c.ControlPointCount())
	for i := range origin {
		origin[i], _ = c.ControlPoint(i)
	}
	a.drag.target = c
	a.drag.grab = p
	a.drag.origin = origin
}

func (a *App) dragTo(pe pointer.Event) {
	switch {
	case a.drag.target != nil:
		c := a.drag.target
		p := a.camera.ScreenToPoint(float64(pe.Position.X), float64(pe.Position.Y))
		delta := p.Sub(a.drag.grab)
		for i, o := range a.drag.origin {
			next := o.Add(delta)
			if i == 0 {
				if b, ok := a.doc.BoardAt(next); ok {
					snapped := b.Snap(next)
					delta = snapped.Sub(o)
					next = snapped
				}
			}
			if err := c.SetControlPoint(i, next); err != nil {
				log.Printf("viewer: move %s: %v", c.Name(), err)
				return
			}
		}
		a.doc.SetState(c, component.StateDragging)
		a.dirty = true
	case a.drag.panning:
		a.camera.Pan(float64(pe.Position.X-a.drag.lastX), float64(pe.Position.Y-a.drag.lastY))
	}
	a.drag.lastX, a.drag.lastY = pe.Position.X, pe.Position.Y
}

func (a *App) release() {
	if c := a.drag.target; c != nil && a.doc.State(c) == component.StateDragging {
		a.doc.SetState(c, component.StateSelected)
	}
	a.drag = dragState{}
}

// applyPalette derives the widget colours from the layout theme: the
// accent is the selection colour, the surface follows the canvas brightness.
func (a *App) applyPalette() {
	p := render.PaletteFor(a.opts.Theme)
	gp := theme.Palette{
		Bg:         color.NRGBA{R: 244, G: 244, B: 240, A: 255},
		Fg:         color.NRGBA{R: 30, G: 30, B: 36, A: 255},
		Bg2:        color.NRGBA{R: 226, G: 226, B: 218, A: 255},
		ContrastBg: p.Selection,
		ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	if isDark(a.opts.Theme) {
		gp.Bg = color.NRGBA{R: 24, G: 26, B: 32, A: 255}
		gp.Fg = color.NRGBA{R: 228, G: 230, B: 236, A: 255}
		gp.Bg2 = color.NRGBA{R: 40, G: 44, B: 54, A: 255}
		gp.ContrastFg = color.NRGBA{R: 16, G: 16, B: 20, A: 255}
	}
	a.gvTheme.WithPalette(gp)
}

// isDark reports whether the theme paints on a dark background, so the
// surrounding widgets follow it.
func isDark(t render.ColorTheme) bool {
	bg := render.PaletteFor(t).Background
	return int(bg.R)*299+int(bg.G)*587+int(bg.B)*114 < 128*1000
}
