package importer

import (
	"context"
	"testing"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

const problemDoc = `
openapi: 3.0.3
info:
  title: Physics problems
  version: 1.0.0
paths:
  /problems/projectile:
    post:
      operationId: submitProjectile
      summary: Projectile Motion
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                angle:
                  type: number
                launched:
                  type: boolean
                unit:
                  type: string
                  enum: [Meters, Feet]
                notes:
                  type: string
                observed:
                  type: string
                  format: date
      responses:
        "200":
          description: OK
`

func TestFromDataBuildsStarterCanvas(t *testing.T) {
	session, err := FromData(context.Background(), []byte(problemDoc), "submitProjectile")
	if err != nil {
		t.Fatalf("FromData returned error: %v", err)
	}
	c := session.Canvas()

	if got := c.Title(); got != "Projectile Motion" {
		t.Fatalf("title = %q, want the operation summary", got)
	}
	// Heading plus five schema properties.
	if got := len(c.Instances()); got != 6 {
		t.Fatalf("canvas has %d instances, want 6", got)
	}

	typeByID := map[string]model.ComponentType{
		"angle":    model.TypeNumberInput,
		"launched": model.TypeToggle,
		"unit":     model.TypeSelect,
		"notes":    model.TypeText,
		"observed": model.TypeDate,
	}
	for id, want := range typeByID {
		inst := c.InstanceByID(id)
		if inst == nil {
			t.Fatalf("field %q missing", id)
		}
		if inst.Type != want {
			t.Fatalf("field %q has type %q, want %q", id, inst.Type, want)
		}
	}

	unit := c.InstanceByID("unit")
	options := dom.AllByTag(unit.Wrapper, "option")
	if len(options) != 2 {
		t.Fatalf("unit select has %d options, want 2", len(options))
	}
	if dom.Attr(options[0], "value") != "meters" || dom.Attr(options[1], "value") != "feet" {
		t.Fatalf("enum values = %q, %q", dom.Attr(options[0], "value"), dom.Attr(options[1], "value"))
	}
}

func TestFromDataLaysOutRows(t *testing.T) {
	session, err := FromData(context.Background(), []byte(problemDoc), "submitProjectile")
	if err != nil {
		t.Fatalf("FromData returned error: %v", err)
	}
	c := session.Canvas()

	// Properties sort alphabetically down the column.
	angle := c.InstanceByID("angle")
	launched := c.InstanceByID("launched")
	if angle.Pos.X != columnX || angle.Pos.Y != firstRowY+rowSpacing {
		t.Fatalf("angle at (%v, %v)", angle.Pos.X, angle.Pos.Y)
	}
	if launched.Pos.Y != angle.Pos.Y+rowSpacing {
		t.Fatalf("rows not spaced: angle y=%v, launched y=%v", angle.Pos.Y, launched.Pos.Y)
	}
}

func TestFromDataUnknownOperation(t *testing.T) {
	if _, err := FromData(context.Background(), []byte(problemDoc), "missingOp"); err == nil {
		t.Fatal("unknown operation should error")
	}
}

func TestFromDataOperationWithoutBody(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: Empty
  version: 1.0.0
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200":
          description: OK
`
	session, err := FromData(context.Background(), []byte(doc), "ping")
	if err != nil {
		t.Fatalf("FromData returned error: %v", err)
	}
	c := session.Canvas()
	if got := len(c.Instances()); got != 1 {
		t.Fatalf("bodyless operation should yield just the heading, have %d", got)
	}
	if got := c.Title(); got != "ping" {
		t.Fatalf("title falls back to the operation id, got %q", got)
	}
}
