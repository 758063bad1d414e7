package canvas

import (
	"math"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// Mode identifies the active pointer interaction. The modes are mutually
// exclusive: whichever handle was grabbed decides the mode until the gesture
// ends.
type Mode int

const (
	ModeNone Mode = iota
	ModeDragging
	ModeResizing
	ModeRotating
)

const minElementSize = 40.0

// Grid holds the snapping configuration.
type Grid struct {
	Snap bool
	Size float64
}

// EditorSession is the explicit interaction context for one author working a
// canvas: selection, interaction mode, grid config, and the interface lock.
// It is the surface the UI layer drives; the canvas underneath stays pure
// document state.
type EditorSession struct {
	canvas   *Canvas
	grid     Grid
	locked   bool
	selected *Instance

	mode       Mode
	active     *Instance
	grabOffset model.Position
	startSize  model.Size
	startPoint model.Position
	center     model.Position
}

// SessionOption configures an editor session.
type SessionOption func(*EditorSession)

// WithGrid sets the snapping configuration.
func WithGrid(grid Grid) SessionOption {
	return func(s *EditorSession) { s.grid = grid }
}

// NewSession wraps a canvas in an interaction context. Snapping defaults to
// a 20px grid.
func NewSession(c *Canvas, opts ...SessionOption) *EditorSession {
	s := &EditorSession{
		canvas: c,
		grid:   Grid{Snap: true, Size: 20},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Canvas returns the underlying document.
func (s *EditorSession) Canvas() *Canvas { return s.canvas }

// Grid returns the current snapping configuration.
func (s *EditorSession) Grid() Grid { return s.grid }

// SetGrid replaces the snapping configuration.
func (s *EditorSession) SetGrid(grid Grid) { s.grid = grid }

// Lock freezes the editing surface. While locked, placement and every
// pointer interaction is a no-op.
func (s *EditorSession) Lock() { s.locked = true }

// Unlock re-enables editing.
func (s *EditorSession) Unlock() { s.locked = false }

// Locked reports whether the surface is frozen.
func (s *EditorSession) Locked() bool { return s.locked }

// Mode returns the active interaction mode.
func (s *EditorSession) Mode() Mode { return s.mode }

// snap rounds a coordinate to the grid. Rotation is never snapped, and a
// disabled grid passes coordinates through.
func (s *EditorSession) snap(v float64) float64 {
	if !s.grid.Snap || s.grid.Size <= 0 || s.mode == ModeRotating {
		return v
	}
	return math.Round(v/s.grid.Size) * s.grid.Size
}

// PlaceComponent drops a component at a canvas position, snapped to the
// grid. Unknown types are silent no-ops, as is placement while locked.
func (s *EditorSession) PlaceComponent(typ model.ComponentType, x, y float64) *Instance {
	if s.locked {
		return nil
	}
	inst := s.canvas.Place(typ, model.Position{X: s.snap(x), Y: s.snap(y)})
	if inst != nil {
		s.Select(inst)
	}
	return inst
}

// Select makes inst the exclusive selection, clearing the previous
// selection's transient UI state. Passing nil deselects.
func (s *EditorSession) Select(inst *Instance) {
	if s.selected == inst {
		return
	}
	if s.selected != nil {
		s.clearTransientUI(s.selected)
	}
	s.selected = inst
	if inst != nil {
		dom.AddClass(inst.Wrapper, "selected")
		s.canvas.zTop++
		inst.Z = s.canvas.zTop
	}
}

// Selected returns the current selection, nil when nothing is selected.
func (s *EditorSession) Selected() *Instance { return s.selected }

// Deselect clears the selection.
func (s *EditorSession) Deselect() { s.Select(nil) }

// clearTransientUI resets per-element editing affordances when selection
// moves away: the selection ring, open option managers, and table cell
// highlights.
func (s *EditorSession) clearTransientUI(inst *Instance) {
	dom.RemoveClass(inst.Wrapper, "selected")
	for _, manager := range dom.AllByClass(inst.Wrapper, "select-options-manager") {
		dom.RemoveClass(manager, "open")
	}
	for _, cell := range dom.AllByTag(inst.Wrapper, "td", "th") {
		dom.RemoveClass(cell, "cell-highlight")
	}
}

// DragStart begins moving an instance. Ignored while locked or when another
// gesture is in progress.
func (s *EditorSession) DragStart(inst *Instance, x, y float64) {
	if s.locked || s.mode != ModeNone || inst == nil || inst.Locked {
		return
	}
	s.Select(inst)
	s.mode = ModeDragging
	s.active = inst
	s.grabOffset = model.Position{X: x - inst.Pos.X, Y: y - inst.Pos.Y}
}

// DragMove updates the dragged instance's position, snapped to the grid.
func (s *EditorSession) DragMove(x, y float64) {
	if s.mode != ModeDragging || s.active == nil {
		return
	}
	s.active.Pos = model.Position{
		X: s.snap(x - s.grabOffset.X),
		Y: s.snap(y - s.grabOffset.Y),
	}
}

// DragEnd completes the move gesture.
func (s *EditorSession) DragEnd() {
	if s.mode == ModeDragging {
		s.mode = ModeNone
		s.active = nil
	}
}

// ResizeStart begins resizing from the instance's resize handle.
func (s *EditorSession) ResizeStart(inst *Instance, x, y float64) {
	if s.locked || s.mode != ModeNone || inst == nil || inst.Locked {
		return
	}
	s.Select(inst)
	s.mode = ModeResizing
	s.active = inst
	s.startPoint = model.Position{X: x, Y: y}
	box := inst.Bounds()
	s.startSize = model.Size{W: box.Width, H: box.Height}
}

// ResizeMove applies the pointer delta to the starting size, snapping each
// extent to the grid and flooring both at the minimum element size.
func (s *EditorSession) ResizeMove(x, y float64) {
	if s.mode != ModeResizing || s.active == nil {
		return
	}
	s.active.Size = model.Size{
		W: math.Max(minElementSize, s.snap(s.startSize.W+x-s.startPoint.X)),
		H: math.Max(minElementSize, s.snap(s.startSize.H+y-s.startPoint.Y)),
	}
}

// ResizeEnd completes the resize gesture.
func (s *EditorSession) ResizeEnd() {
	if s.mode == ModeResizing {
		s.mode = ModeNone
		s.active = nil
	}
}

// RotateStart begins rotating around the instance's center.
func (s *EditorSession) RotateStart(inst *Instance) {
	if s.locked || s.mode != ModeNone || inst == nil || inst.Locked {
		return
	}
	s.Select(inst)
	s.mode = ModeRotating
	s.active = inst
	box := inst.Bounds()
	s.center = model.Position{X: box.CenterX(), Y: box.CenterY()}
}

// RotateMove sets the rotation from the pointer's angle to the element
// center, offset so the handle sits above the element at zero degrees.
func (s *EditorSession) RotateMove(x, y float64) {
	if s.mode != ModeRotating || s.active == nil {
		return
	}
	angle := math.Atan2(y-s.center.Y, x-s.center.X)*180/math.Pi + 90
	s.active.Rotation = angle
}

// RotateEnd completes the rotate gesture.
func (s *EditorSession) RotateEnd() {
	if s.mode == ModeRotating {
		s.mode = ModeNone
		s.active = nil
	}
}

// Delete removes an instance, clearing the selection when it was selected.
// No-op while locked.
func (s *EditorSession) Delete(inst *Instance) {
	if s.locked || inst == nil {
		return
	}
	if s.selected == inst {
		s.selected = nil
	}
	s.canvas.Remove(inst)
}

// Clear empties the canvas and resets the interaction state.
func (s *EditorSession) Clear() {
	if s.locked {
		return
	}
	s.selected = nil
	s.active = nil
	s.mode = ModeNone
	s.canvas.Clear()
}

// EditIdentifier renames the instance, rejecting duplicates and blanks.
func (s *EditorSession) EditIdentifier(inst *Instance, id string) error {
	return s.canvas.SetInstanceID(inst, id)
}
