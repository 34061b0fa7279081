package ingest

import (
	"testing"

	"github.com/tedstrazimiri/droneclear/internal/schema"
)

// memSource feeds fixed rows through the pipeline
type memSource struct {
	name string
	rows [][]string
}

func (s *memSource) Name() string { return s.name }

func (s *memSource) Rows() ([][]string, error) { return s.rows, nil }

func testSchemaDoc() schema.Document {
	return schema.Document{
		"schema_version": "v2",
		"components": map[string]interface{}{
			"frames": []interface{}{
				map[string]interface{}{"pid": "FRM-X", "name": "x", "manufacturer": "y"},
			},
			"motors": []interface{}{
				map[string]interface{}{"pid": "MTR-X", "name": "x", "manufacturer": "y"},
			},
			"goggles": []interface{}{
				map[string]interface{}{"pid": "GOG-X", "name": "x", "manufacturer": "y"},
			},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	p, err := NewPipeline(testSchemaDoc(), nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	src := &memSource{name: "list1.csv", rows: [][]string{
		{"FRAME", "Armattan Rooster 6", "$89.99"},
		{"MOTORS", "iFlight Xing 2207", "https://example.com/xing"},
		{"SHIPPING", "not a component", "x"},
		{"FRAME", "too", "short"}, // no cell long enough to be a name
		{"FRAME", "ok"},           // fewer than three cells
	}}

	result, err := p.Run([]RowSource{src})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.PerFile["list1.csv"] != 2 {
		t.Errorf("PerFile = %v", result.PerFile)
	}

	frames := result.File.Components["frames"]
	if len(frames) != 1 {
		t.Fatalf("frames = %d entries", len(frames))
	}
	if frames[0]["pid"] != "FRM-0001" {
		t.Errorf("frame pid = %v", frames[0]["pid"])
	}
	if frames[0]["_approx_price"] != "$89.99" {
		t.Errorf("frame price = %v", frames[0]["_approx_price"])
	}

	motors := result.File.Components["motors"]
	if len(motors) != 1 || motors[0]["link"] != "https://example.com/xing" {
		t.Errorf("motors = %v", motors)
	}

	// Categories with no matched rows still appear, empty
	if goggles, ok := result.File.Components["goggles"]; !ok || len(goggles) != 0 {
		t.Errorf("goggles = %v, want present and empty", result.File.Components["goggles"])
	}
}

func TestPipelineCountersSpanSources(t *testing.T) {
	p, err := NewPipeline(testSchemaDoc(), nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	a := &memSource{name: "a.csv", rows: [][]string{
		{"FRAME", "Armattan Rooster 6", "x"},
	}}
	b := &memSource{name: "b.csv", rows: [][]string{
		{"FRAME", "TBS Source One V5", "x"},
	}}

	result, err := p.Run([]RowSource{a, b})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	frames := result.File.Components["frames"]
	if len(frames) != 2 {
		t.Fatalf("frames = %d entries", len(frames))
	}
	if frames[0]["pid"] != "FRM-0001" || frames[1]["pid"] != "FRM-0002" {
		t.Errorf("pids = %v, %v; sequence must continue across files", frames[0]["pid"], frames[1]["pid"])
	}
}

func TestPipelineRejectsDocWithoutComponents(t *testing.T) {
	_, err := NewPipeline(schema.Document{"schema_version": "v2"}, nil)
	if err == nil {
		t.Fatal("expected error for document without components")
	}
}
