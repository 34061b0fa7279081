// Package catalogue defines the flat JSON catalogue file exchanged with the
// component visualizer, and the core-field split applied on its way in and
// out of the relational store.
package catalogue

import (
	"fmt"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
)

// SchemaVersion the catalogue file version this backend emits
const SchemaVersion = "v2"

// Metadata top-level provenance block of a catalogue file
type Metadata struct {
	ExportedAt string `json:"exported_at"`
	Source     string `json:"source"`
	Notes      string `json:"notes"`
}

// File the persisted catalogue document: components grouped by category slug,
// each a flat object, plus an optional drone model list
type File struct {
	SchemaVersion string                              `json:"schema_version"`
	Metadata      Metadata                            `json:"metadata"`
	Components    map[string][]map[string]interface{} `json:"components"`
	DroneModels   []map[string]interface{}            `json:"drone_models,omitempty"`
}

// coreFields keys hoisted into Component columns. Everything else in a flat
// part object belongs to the spec payload. The set must stay in sync between
// import, export and golden reseed or round-trips lose data.
var coreFields = map[string]bool{
	"pid":           true,
	"name":          true,
	"manufacturer":  true,
	"description":   true,
	"link":          true,
	"approx_price":  true,
	"_approx_price": true,
	"image_file":    true,
	"manual_link":   true,
	"category":      true,
}

// IsCoreField reports whether a flat-object key maps to a Component column
func IsCoreField(key string) bool {
	return coreFields[key]
}

// SpecData extracts the non-core keys of a flat part object verbatim
func SpecData(obj map[string]interface{}) map[string]interface{} {
	spec := make(map[string]interface{})
	for k, v := range obj {
		if !coreFields[k] {
			spec[k] = v
		}
	}
	return spec
}

// StringField reads an optional string key, tolerating absent or null values
func StringField(obj map[string]interface{}, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// PriceField reads the approximate price, accepting both the exported
// "approx_price" and the ingested "_approx_price" spellings and formatting
// bare numbers as dollar amounts
func PriceField(obj map[string]interface{}) string {
	for _, key := range []string{"approx_price", "_approx_price"} {
		switch v := obj[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("$%.2f", v)
		case int:
			return fmt.Sprintf("$%.2f", float64(v))
		}
	}
	return ""
}

// Flatten merges a component's columns and spec payload back into one flat
// object, the inverse of the import split
func Flatten(c *entity.Component) map[string]interface{} {
	obj := map[string]interface{}{
		"pid":          c.PID,
		"name":         c.Name,
		"manufacturer": c.Manufacturer,
		"description":  c.Description,
		"link":         c.Link,
		"approx_price": c.ApproxPrice,
	}
	if c.ImageFile != "" {
		obj["image_file"] = c.ImageFile
	}
	if c.ManualLink != "" {
		obj["manual_link"] = c.ManualLink
	}
	for k, v := range c.SchemaData {
		obj[k] = v
	}
	return obj
}

// FlattenModel serializes a drone model for the catalogue file
func FlattenModel(d *entity.DroneModel) map[string]interface{} {
	relations := map[string]interface{}{}
	if d.Relations != nil {
		relations = d.Relations
	}
	return map[string]interface{}{
		"pid":          d.PID,
		"name":         d.Name,
		"description":  d.Description,
		"vehicle_type": d.VehicleType,
		"build_class":  d.BuildClass,
		"image_file":   d.ImageFile,
		"pdf_file":     d.PDFFile,
		"relations":    relations,
	}
}
