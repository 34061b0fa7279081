package ingest

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tedstrazimiri/droneclear/internal/catalogue"
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

// Result what one ingestion run produced
type Result struct {
	File    *catalogue.File
	Total   int
	PerFile map[string]int
}

// Pipeline reconciles spreadsheet exports into a single catalogue file shaped
// by the schema templates
type Pipeline struct {
	templates map[string][]map[string]interface{}
	logger    *zap.Logger
}

// NewPipeline builds a pipeline from a schema document. Every category in the
// document appears in the output, empty or not, so the template shape is kept.
func NewPipeline(doc schema.Document, logger *zap.Logger) (*Pipeline, error) {
	templates := doc.Templates()
	if templates == nil {
		return nil, fmt.Errorf("schema document has no components mapping")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{templates: templates, logger: logger}, nil
}

// Run processes each source in order with one shared set of PID counters.
// Rows that fail classification or never yield a name are dropped silently;
// that filtering is the point of the pipeline, not an error condition.
func (p *Pipeline) Run(sources []RowSource) (*Result, error) {
	counters := NewCounters()
	builder := NewBuilder(p.templates, counters)

	components := make(map[string][]map[string]interface{}, len(p.templates))
	for slug := range p.templates {
		components[slug] = []map[string]interface{}{}
	}

	result := &Result{PerFile: make(map[string]int)}

	for _, src := range sources {
		p.logger.Info("Parsing source", zap.String("file", src.Name()))
		rows, err := src.Rows()
		if err != nil {
			return nil, err
		}

		count := 0
		for _, row := range rows {
			if len(row) < 3 {
				continue
			}

			category, ok := Classify(row)
			if !ok {
				continue
			}

			fields := Extract(row[1:])
			if fields.Name == "" {
				continue
			}

			comp := builder.Build(category, fields, src.Name())
			components[category] = append(components[category], comp)
			count++
		}

		result.PerFile[src.Name()] = count
		result.Total += count
		p.logger.Info("Parsed source",
			zap.String("file", src.Name()),
			zap.Int("components", count),
		)
	}

	result.File = &catalogue.File{
		SchemaVersion: catalogue.SchemaVersion,
		Metadata: catalogue.Metadata{
			ExportedAt: "Generated via dcctl ingest",
			Source:     "DroneClear - CSV Import",
			Notes:      "Consolidated database from various user CSV component lists.",
		},
		Components: components,
	}
	return result, nil
}
