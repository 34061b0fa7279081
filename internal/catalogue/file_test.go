package catalogue

import (
	"testing"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
)

func TestSpecDataExcludesCoreFields(t *testing.T) {
	obj := map[string]interface{}{
		"pid":           "FRM-0001",
		"name":          "Frame",
		"manufacturer":  "Armattan",
		"_approx_price": "$89.99",
		"category":      "frames",
		"wheelbase_mm":  220.0,
		"_source":       "list1.csv",
	}

	spec := SpecData(obj)
	if len(spec) != 2 {
		t.Fatalf("SpecData = %v", spec)
	}
	if spec["wheelbase_mm"] != 220.0 || spec["_source"] != "list1.csv" {
		t.Errorf("SpecData = %v", spec)
	}
}

func TestPriceField(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
		want string
	}{
		{"string price", map[string]interface{}{"approx_price": "$89.99"}, "$89.99"},
		{"underscore spelling", map[string]interface{}{"_approx_price": "$12.50"}, "$12.50"},
		{"approx_price wins", map[string]interface{}{"approx_price": "$1.00", "_approx_price": "$2.00"}, "$1.00"},
		{"numeric price formatted", map[string]interface{}{"approx_price": 89.9}, "$89.90"},
		{"empty string falls through", map[string]interface{}{"approx_price": "", "_approx_price": "$3.00"}, "$3.00"},
		{"absent", map[string]interface{}{}, ""},
		{"null tolerated", map[string]interface{}{"approx_price": nil}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriceField(tt.obj); got != tt.want {
				t.Errorf("PriceField = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlattenRoundTripsSpecPayload(t *testing.T) {
	comp := &entity.Component{
		PID:          "MTR-0003",
		Name:         "Xing 2207",
		Manufacturer: "iFlight",
		Description:  "1800KV",
		Link:         "https://example.com/xing",
		ApproxPrice:  "$24.99",
		SchemaData: entity.JSONB{
			"kv":      1800.0,
			"_source": "list2.csv",
		},
	}

	obj := Flatten(comp)

	if obj["pid"] != "MTR-0003" || obj["approx_price"] != "$24.99" {
		t.Errorf("Flatten = %v", obj)
	}
	if obj["kv"] != 1800.0 {
		t.Errorf("spec payload missing: %v", obj)
	}
	// Empty optional fields stay out of the flat object entirely
	if _, present := obj["image_file"]; present {
		t.Error("empty image_file should be omitted")
	}
	if _, present := obj["manual_link"]; present {
		t.Error("empty manual_link should be omitted")
	}

	// And the flat object splits back cleanly
	spec := SpecData(obj)
	if spec["kv"] != 1800.0 || spec["_source"] != "list2.csv" {
		t.Errorf("SpecData after Flatten = %v", spec)
	}
	if _, present := spec["pid"]; present {
		t.Error("core field leaked into spec payload")
	}
}

func TestFlattenModelAlwaysHasRelations(t *testing.T) {
	obj := FlattenModel(&entity.DroneModel{PID: "DM-0001", Name: "Scout"})
	rel, ok := obj["relations"].(map[string]interface{})
	if !ok || rel == nil {
		t.Errorf("relations = %v, want empty mapping", obj["relations"])
	}
}
