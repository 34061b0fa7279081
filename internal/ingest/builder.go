package ingest

import (
	"fmt"
	"strings"
)

// pidPrefixes category slug → PID prefix
var pidPrefixes = map[string]string{
	"frames":                "FRM",
	"motors":                "MTR",
	"servos":                "SRV",
	"stacks":                "STK",
	"flight_controllers":    "FC",
	"escs":                  "ESC",
	"aio_boards":            "AIO",
	"pdbs":                  "PDB",
	"voltage_regulators":    "VRG",
	"batteries":             "BAT",
	"battery_chargers":      "CHG",
	"propellers":            "PRP",
	"fpv_cameras":           "CAM",
	"digital_video_cameras": "DVC",
	"thermal_cameras":       "THM",
	"action_cameras":        "ACT",
	"video_transmitters":    "VTX",
	"receivers":             "RX",
	"transmitters":          "TX",
	"antennas":              "ANT",
	"gps":                   "GPS",
	"goggles":               "GOG",
}

// Counters per-category PID sequence state for one ingestion run. Passed in
// explicitly so a run is reproducible and never leaks state into the next.
type Counters struct {
	next map[string]int
}

func NewCounters() *Counters {
	return &Counters{next: make(map[string]int)}
}

// NextPID issues the next identifier for a category: prefix plus a
// zero-padded sequence starting at 1
func (c *Counters) NextPID(category string) string {
	prefix, ok := pidPrefixes[category]
	if !ok {
		prefix = "UNK"
	}
	if c.next[category] == 0 {
		c.next[category] = 1
	}
	pid := fmt.Sprintf("%s-%04d", prefix, c.next[category])
	c.next[category]++
	return pid
}

// Builder shapes extracted fields into records matching the schema template
// of their category
type Builder struct {
	templates map[string][]map[string]interface{}
	counters  *Counters
}

func NewBuilder(templates map[string][]map[string]interface{}, counters *Counters) *Builder {
	return &Builder{templates: templates, counters: counters}
}

// Build produces one schema-shaped record: a deep copy of the category's
// first template with every field nulled out, then populated with what the
// extractor recovered. Keys starting with "_" are structural metadata and
// survive the nulling untouched. Downstream consumers rely on every record
// carrying the full key set of its category, known or not.
func (b *Builder) Build(category string, fields Fields, sourceName string) map[string]interface{} {
	var base map[string]interface{}
	if templates := b.templates[category]; len(templates) > 0 {
		base = deepCopy(templates[0])
	} else {
		base = map[string]interface{}{}
	}

	clearValues(base)

	base["pid"] = b.counters.NextPID(category)
	base["name"] = fields.Name
	base["manufacturer"] = "Unknown"
	if note := strings.TrimSpace(fields.Note); note != "" {
		base["description"] = note
	} else {
		base["description"] = "Imported from CSV"
	}
	if fields.Link != "" {
		base["link"] = fields.Link
	}
	if fields.Price != "" {
		base["_approx_price"] = fields.Price
	}
	base["_source"] = sourceName

	return base
}

// clearValues recursively nulls a template in place: nested mappings recurse,
// lists reset to empty, scalars become nil. Keys prefixed with "_" are left
// alone.
func clearValues(m map[string]interface{}) {
	for k, v := range m {
		if strings.HasPrefix(k, "_") {
			continue
		}
		switch val := v.(type) {
		case map[string]interface{}:
			clearValues(val)
		case []interface{}:
			m[k] = []interface{}{}
		default:
			m[k] = nil
		}
	}
}

func deepCopy(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopy(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return val
	}
}
