package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"github.com/glenrsmithjr/teach/internal/logging"
	"github.com/glenrsmithjr/teach/pkg/canvas"
	"github.com/glenrsmithjr/teach/pkg/expertmodel"
	"github.com/glenrsmithjr/teach/pkg/extract"
	"github.com/glenrsmithjr/teach/pkg/importer"
	"github.com/glenrsmithjr/teach/pkg/session"
)

func main() {
	layoutPath := flag.String("layout", "", "YAML canvas layout to render")
	openapiPath := flag.String("openapi", "", "OpenAPI document to import a starter canvas from")
	operation := flag.String("operation", "", "operation ID to import (with -openapi)")
	output := flag.String("output", "", "output file (stdout if empty)")
	demoPath := flag.String("demo", "", "JSON demonstration descriptors to replay interactively")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)
	ctx := context.Background()

	editor, err := buildCanvas(ctx, *layoutPath, *openapiPath, *operation)
	if err != nil {
		log.Fatalf("Failed to build canvas: %v", err)
	}

	if *demoPath != "" {
		if err := runDemo(ctx, editor.Canvas(), *demoPath, logger); err != nil {
			log.Fatalf("Demonstration playback failed: %v", err)
		}
		return
	}

	outputHTML, err := editor.Canvas().RenderHTML()
	if err != nil {
		log.Fatalf("Failed to render tutor: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(outputHTML), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Tutor written to %s\n", *output)
	} else {
		fmt.Println(outputHTML)
	}
}

func buildCanvas(ctx context.Context, layoutPath, openapiPath, operation string) (*canvas.EditorSession, error) {
	switch {
	case layoutPath != "":
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return nil, err
		}
		layout, err := canvas.ParseLayout(data)
		if err != nil {
			return nil, err
		}
		return layout.Build()
	case openapiPath != "":
		if operation == "" {
			return nil, fmt.Errorf("-operation is required with -openapi")
		}
		return importer.FromFile(ctx, openapiPath, operation)
	default:
		return nil, fmt.Errorf("one of -layout or -openapi is required")
	}
}

// runDemo replays a descriptor file through the playback state machine,
// pausing on each review card for a terminal confirmation.
func runDemo(ctx context.Context, c *canvas.Canvas, demoPath string, logger *slog.Logger) error {
	data, err := os.ReadFile(demoPath)
	if err != nil {
		return err
	}
	var descriptors []expertmodel.Descriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return fmt.Errorf("parse descriptors: %w", err)
	}

	local, agent := session.NewLoopbackPair()
	agent.On(session.EventMessage, func(_ context.Context, payload json.RawMessage) {
		var msg session.MessagePayload
		if err := json.Unmarshal(payload, &msg); err == nil {
			fmt.Printf("[%s] %s\n", msg.Sender, msg.Content)
		}
	})
	agent.On(session.EventExpertModelDefined, func(_ context.Context, payload json.RawMessage) {
		fmt.Println("Expert model:")
		fmt.Println(string(payload))
	})

	modelBuilder := expertmodel.New()
	playback, err := expertmodel.NewPlayback(c, modelBuilder, local, descriptors)
	if err != nil {
		return err
	}
	if err := playback.Start(ctx); err != nil {
		return err
	}

	for {
		stepID, ok := playback.Awaiting()
		if !ok {
			break
		}
		step := modelBuilder.Step(stepID)
		logger.Debug("awaiting confirmation", "step", stepID)

		var action string
		prompt := &survey.Select{
			Message: fmt.Sprintf("Step %q (%d inputs)", step.Output, len(step.Inputs)),
			Options: []string{"Confirm", "Edit"},
		}
		if err := survey.AskOne(prompt, &action); err != nil {
			return err
		}

		if action == "Edit" {
			if err := playback.Edit(); err != nil {
				return err
			}
			var operator string
			if err := survey.AskOne(&survey.Input{
				Message: "Operator:",
				Default: step.Operator,
			}, &operator); err != nil {
				return err
			}
			if err := modelBuilder.SetOperator(operator); err != nil {
				return err
			}
		}
		if err := playback.Confirm(ctx); err != nil {
			return err
		}
	}

	fields := extract.Extract(c, extract.Options{})
	fmt.Printf("Canvas now holds %d fields.\n", len(fields))
	return nil
}
