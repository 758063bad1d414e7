package canvas

import (
	"strings"
	"testing"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

func TestPlaceComponentSnapsToGrid(t *testing.T) {
	session := NewSession(New())

	inst := session.PlaceComponent(model.TypeText, 33, 47)
	if inst == nil {
		t.Fatal("placement returned nil")
	}
	if inst.Pos.X != 40 || inst.Pos.Y != 40 {
		t.Fatalf("position = (%v, %v), want snapped (40, 40)", inst.Pos.X, inst.Pos.Y)
	}
	if inst.ID == "" || dom.ByID(session.Canvas().root, inst.ID) == nil {
		t.Fatal("instance wrapper should be in the document under its id")
	}
}

func TestPlaceComponentDisabledSnap(t *testing.T) {
	session := NewSession(New(), WithGrid(Grid{Snap: false, Size: 20}))
	inst := session.PlaceComponent(model.TypeText, 33, 47)
	if inst.Pos.X != 33 || inst.Pos.Y != 47 {
		t.Fatalf("position = (%v, %v), want unsnapped (33, 47)", inst.Pos.X, inst.Pos.Y)
	}
}

func TestPlaceUnknownTypeIsSilentNoop(t *testing.T) {
	session := NewSession(New())
	if inst := session.PlaceComponent("no-such-type", 0, 0); inst != nil {
		t.Fatal("unknown type should be a silent no-op")
	}
	if !session.Canvas().Empty() {
		t.Fatal("canvas should remain empty")
	}
}

func TestLabelDropOnEmptyCanvas(t *testing.T) {
	session := NewSession(New())
	if inst := session.PlaceComponent(model.TypeLabel, 100, 100); inst != nil {
		t.Fatal("label drop with no field underneath should create nothing")
	}
	if !session.Canvas().Empty() {
		t.Fatal("canvas should remain empty after a missed label drop")
	}
}

func TestLabelDropAttachesToField(t *testing.T) {
	c := New()
	session := NewSession(c)
	field := session.PlaceComponent(model.TypeText, 100, 100)

	if inst := session.PlaceComponent(model.TypeLabel, 120, 120); inst != nil {
		t.Fatal("label attach should not create a freestanding instance")
	}

	label := dom.ByTag(field.Wrapper, "label")
	if label == nil {
		t.Fatal("field wrapper should have gained a label")
	}
	control := dom.ByTag(field.Wrapper, "input")
	if id := dom.Attr(control, "id"); id == "" || dom.Attr(label, "for") != id {
		t.Fatalf("label for=%q should reference generated control id %q",
			dom.Attr(label, "for"), id)
	}

	// A second label drop on the same field is a no-op.
	session.PlaceComponent(model.TypeLabel, 120, 120)
	if got := len(dom.AllByTag(field.Wrapper, "label")); got != 1 {
		t.Fatalf("field has %d labels, want 1", got)
	}
}

func TestSelectIsExclusiveAndClearsTransientUI(t *testing.T) {
	c := New()
	session := NewSession(c)
	first := session.PlaceComponent(model.TypeSelect, 0, 0)
	second := session.PlaceComponent(model.TypeText, 300, 300)

	session.Select(first)
	manager := dom.ByClass(first.Wrapper, "select-options-manager")
	dom.AddClass(manager, "open")

	session.Select(second)
	if session.Selected() != second {
		t.Fatal("selection should move to the second instance")
	}
	if dom.HasClass(first.Wrapper, "selected") {
		t.Fatal("previous selection ring should be cleared")
	}
	if dom.HasClass(manager, "open") {
		t.Fatal("open option manager should be closed when selection moves")
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeText, 0, 0)
	session.Select(inst)

	session.Delete(inst)
	if session.Selected() != nil {
		t.Fatal("deleting the selected instance should clear selection")
	}
	if len(c.Instances()) != 0 || !c.Empty() {
		t.Fatal("canvas should be empty after deletion")
	}
}

func TestInteractionModesAreExclusive(t *testing.T) {
	c := New()
	session := NewSession(c)
	a := session.PlaceComponent(model.TypeText, 0, 0)
	b := session.PlaceComponent(model.TypeText, 200, 200)

	session.DragStart(a, 10, 10)
	session.ResizeStart(b, 0, 0)
	if session.Mode() != ModeDragging {
		t.Fatal("resize must not start while dragging")
	}
	session.DragEnd()
	if session.Mode() != ModeNone {
		t.Fatal("drag end should return to idle")
	}
}

func TestDragMoveSnaps(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeText, 0, 0)

	session.DragStart(inst, 0, 0)
	session.DragMove(93, 27)
	session.DragEnd()

	if inst.Pos.X != 100 || inst.Pos.Y != 20 {
		t.Fatalf("position = (%v, %v), want snapped (100, 20)", inst.Pos.X, inst.Pos.Y)
	}
}

func TestResizeFloorsAtMinimum(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeContainer, 0, 0)

	session.ResizeStart(inst, 0, 0)
	session.ResizeMove(-1000, -1000)
	session.ResizeEnd()

	if inst.Size.W != minElementSize || inst.Size.H != minElementSize {
		t.Fatalf("size = %vx%v, want floored at %v", inst.Size.W, inst.Size.H, minElementSize)
	}
}

func TestRotationIsNeverSnapped(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeShapeRect, 0, 0)
	inst.Size = model.Size{W: 100, H: 100}

	session.RotateStart(inst)
	// Pointer directly right of center: atan2 = 0, plus the 90 degree
	// handle offset.
	session.RotateMove(500, 50)
	session.RotateEnd()

	if inst.Rotation != 90 {
		t.Fatalf("rotation = %v, want 90", inst.Rotation)
	}
}

func TestLockFreezesEditing(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeText, 0, 0)

	session.Lock()
	if got := session.PlaceComponent(model.TypeText, 100, 100); got != nil {
		t.Fatal("placement while locked should be a no-op")
	}
	session.DragStart(inst, 0, 0)
	if session.Mode() != ModeNone {
		t.Fatal("drag while locked should be a no-op")
	}
	session.Delete(inst)
	if len(c.Instances()) != 1 {
		t.Fatal("delete while locked should be a no-op")
	}

	session.Unlock()
	session.Delete(inst)
	if len(c.Instances()) != 0 {
		t.Fatal("delete after unlock should work")
	}
}

func TestTitleFallsBack(t *testing.T) {
	c := New()
	session := NewSession(c)
	if got := c.Title(); got != "Untitled Tutor" {
		t.Fatalf("empty canvas title = %q", got)
	}

	heading := session.PlaceComponent(model.TypeH1, 0, 0)
	c.SetFieldValue(heading.ID, "Fractions 101")
	if got := c.Title(); got != "Fractions 101" {
		t.Fatalf("title = %q, want Fractions 101", got)
	}
}

func TestSetInstanceIDRejectsDuplicates(t *testing.T) {
	c := New()
	session := NewSession(c)
	a := session.PlaceComponent(model.TypeText, 0, 0)
	b := session.PlaceComponent(model.TypeText, 200, 200)

	if err := c.SetInstanceID(a, "velocity"); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if err := c.SetInstanceID(b, "velocity"); err == nil {
		t.Fatal("duplicate id should be rejected")
	}
	if err := c.SetInstanceID(b, "  "); err == nil {
		t.Fatal("blank id should be rejected")
	}
	if c.InstanceByID("velocity") != a {
		t.Fatal("renamed instance should resolve under its new id")
	}
}

func TestClearAllInputValues(t *testing.T) {
	c := New()
	session := NewSession(c)
	text := session.PlaceComponent(model.TypeText, 0, 0)
	c.SetFieldValue(text.ID, "hello")
	check := session.PlaceComponent(model.TypeCheckbox, 200, 0)
	input := dom.ByTag(check.Wrapper, "input")
	dom.SetAttr(input, "checked", "")

	c.ClearAllInputValues()

	if dom.HasAttr(dom.ByTag(text.Wrapper, "input"), "value") {
		t.Fatal("text value should be cleared")
	}
	if dom.HasAttr(input, "checked") {
		t.Fatal("check state should be cleared")
	}
}

func TestHighlightHelpers(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeText, 0, 0)

	c.Highlight(inst.ID, true)
	if !dom.HasClass(inst.Wrapper, "demonstration-highlight") {
		t.Fatal("highlight class missing")
	}
	c.ClearHighlights()
	if dom.HasClass(inst.Wrapper, "demonstration-highlight") {
		t.Fatal("highlight should be cleared")
	}
}

func TestSetFieldDisabled(t *testing.T) {
	c := New()
	session := NewSession(c)
	inst := session.PlaceComponent(model.TypeText, 0, 0)

	c.SetFieldDisabled(inst.ID, true)
	if !dom.HasAttr(dom.ByTag(inst.Wrapper, "input"), "disabled") {
		t.Fatal("control should be disabled")
	}
	c.SetFieldDisabled(inst.ID, false)
	if dom.HasAttr(dom.ByTag(inst.Wrapper, "input"), "disabled") {
		t.Fatal("control should be re-enabled")
	}
}

func TestInstanceAtPrefersTopmost(t *testing.T) {
	c := New()
	session := NewSession(c)
	bottom := session.PlaceComponent(model.TypeContainer, 0, 0)
	top := session.PlaceComponent(model.TypeContainer, 0, 0)

	if got := c.InstanceAt(model.Position{X: 50, Y: 50}); got != top {
		t.Fatalf("hit test returned %v, want topmost", got.ID)
	}
	session.Select(bottom)
	if got := c.InstanceAt(model.Position{X: 50, Y: 50}); got != bottom {
		t.Fatal("selection should raise the instance above its sibling")
	}
}

func TestEmptySkipsDecorativeChildren(t *testing.T) {
	c := New()
	placeholder := dom.NewElement("div")
	dom.AddClass(placeholder, "canvas-placeholder")
	c.root.AppendChild(placeholder)
	if !c.Empty() {
		t.Fatal("placeholder alone should count as empty")
	}
	if !strings.Contains(dom.Render(c.root), "canvas-placeholder") {
		t.Fatal("placeholder should stay in the tree")
	}
}
