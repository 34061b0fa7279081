package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/schema"
	"github.com/tedstrazimiri/droneclear/internal/testutil"
)

func newCatalogueService(db *gorm.DB) *CatalogueService {
	repos := repository.NewRepositories(db)
	return NewCatalogueService(repos.Category, repos.Component, repos.DroneModel, zap.NewNop())
}

func TestImportCreatesAndUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	testutil.SeedCategory(t, db, "frames", "Frames")

	parts := []map[string]interface{}{
		{
			"pid":          "FRM-0001",
			"category":     "frames",
			"name":         "Rooster 6",
			"manufacturer": "Armattan",
			"approx_price": "$89.99",
			"wheelbase_mm": 220.0,
		},
	}

	report, err := svc.Import(ctx, parts)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Created != 1 || report.Updated != 0 || len(report.Errors) != 0 {
		t.Fatalf("report = %+v", report)
	}

	comp, err := svc.GetComponent(ctx, "FRM-0001")
	if err != nil {
		t.Fatalf("GetComponent: %v", err)
	}
	if comp.Manufacturer != "Armattan" || comp.ApproxPrice != "$89.99" {
		t.Errorf("component = %+v", comp)
	}
	if comp.SchemaData["wheelbase_mm"] != 220.0 {
		t.Errorf("spec payload = %v", comp.SchemaData)
	}

	// Re-importing the same PID is a full overwrite, not a merge
	parts[0]["name"] = "Rooster 6 LR"
	delete(parts[0], "approx_price")
	report, err = svc.Import(ctx, parts)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if report.Created != 0 || report.Updated != 1 {
		t.Fatalf("second report = %+v", report)
	}

	comp, _ = svc.GetComponent(ctx, "FRM-0001")
	if comp.Name != "Rooster 6 LR" {
		t.Errorf("name = %q", comp.Name)
	}
	if comp.ApproxPrice != "" {
		t.Errorf("approx_price = %q, want dropped field cleared", comp.ApproxPrice)
	}
}

func TestImportPartialFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	testutil.SeedCategory(t, db, "frames", "Frames")

	parts := []map[string]interface{}{
		{"pid": "FRM-0001", "category": "frames", "name": "Good"},
		{"pid": "", "category": "frames", "name": "No PID"},
		{"pid": "MTR-0001", "category": "motors", "name": "Unknown cat"},
		{"pid": "FRM-0002", "category": "frames", "name": "Also good"},
	}

	report, err := svc.Import(ctx, parts)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Created != 2 {
		t.Errorf("Created = %d, want valid entries committed", report.Created)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("Errors = %v", report.Errors)
	}
	if report.Errors[0].Index != 1 || report.Errors[1].Index != 2 {
		t.Errorf("error indexes = %v", report.Errors)
	}
	if report.Errors[1].Error != `unknown category "motors"` {
		t.Errorf("unknown category message = %q", report.Errors[1].Error)
	}
}

func TestExportRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	testutil.SeedCategory(t, db, "frames", "Frames")
	testutil.SeedCategory(t, db, "motors", "Motors")

	parts := []map[string]interface{}{
		{"pid": "FRM-0001", "category": "frames", "name": "Rooster 6", "wheelbase_mm": 220.0},
	}
	if _, err := svc.Import(ctx, parts); err != nil {
		t.Fatalf("Import: %v", err)
	}

	file, err := svc.Export(ctx, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if file.SchemaVersion != "v2" {
		t.Errorf("schema_version = %q", file.SchemaVersion)
	}
	if len(file.Components["frames"]) != 1 {
		t.Fatalf("frames = %v", file.Components["frames"])
	}
	if file.Components["frames"][0]["wheelbase_mm"] != 220.0 {
		t.Errorf("spec payload lost: %v", file.Components["frames"][0])
	}
	// Empty categories still appear so the file round-trips losslessly
	if list, ok := file.Components["motors"]; !ok || len(list) != 0 {
		t.Errorf("motors = %v, want present and empty", file.Components["motors"])
	}

	// The exported flat objects must re-import unchanged
	flat := []map[string]interface{}{}
	for slug, list := range file.Components {
		for _, obj := range list {
			obj["category"] = slug
			flat = append(flat, obj)
		}
	}
	report, err := svc.Import(ctx, flat)
	if err != nil {
		t.Fatalf("re-Import: %v", err)
	}
	if report.Created != 0 || report.Updated != 1 || len(report.Errors) != 0 {
		t.Errorf("re-import report = %+v", report)
	}
}

func TestExportCategoryFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	frames := testutil.SeedCategory(t, db, "frames", "Frames")
	motors := testutil.SeedCategory(t, db, "motors", "Motors")
	testutil.SeedComponent(t, db, frames, "FRM-0001", "Rooster 6")
	testutil.SeedComponent(t, db, motors, "MTR-0001", "Xing 2207")

	file, err := svc.Export(ctx, "motors")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(file.Components) != 1 || len(file.Components["motors"]) != 1 {
		t.Errorf("filtered export = %v", file.Components)
	}
	if len(file.DroneModels) != 0 {
		t.Errorf("drone models in filtered export: %v", file.DroneModels)
	}
}

func goldenDoc() schema.Document {
	return schema.Document{
		"schema_version": "v2",
		"components": map[string]interface{}{
			"frames": []interface{}{
				map[string]interface{}{
					"pid":          "FRM-0001",
					"name":         "Rooster 6",
					"manufacturer": "Armattan",
					"wheelbase_mm": 220.0,
				},
			},
			"motors": []interface{}{
				map[string]interface{}{
					"pid":  "MTR-0001",
					"name": "Xing 2207",
				},
			},
		},
		"drone_models": []interface{}{
			map[string]interface{}{
				"pid":  "DM-0001",
				"name": "Scout",
				"relations": map[string]interface{}{
					"frame": "FRM-0001",
				},
			},
		},
	}
}

func TestResetToGolden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	// Pre-existing rows that the reset must clear out
	stale := testutil.SeedCategory(t, db, "goggles", "Goggles")
	testutil.SeedComponent(t, db, stale, "GOG-0001", "Old goggles")

	report, err := svc.ResetToGolden(ctx, goldenDoc())
	if err != nil {
		t.Fatalf("ResetToGolden: %v", err)
	}
	if report.DeletedComponents != 1 {
		t.Errorf("DeletedComponents = %d", report.DeletedComponents)
	}
	if report.Categories != 2 || report.Components != 2 || report.Models != 1 {
		t.Errorf("report = %+v", report)
	}

	if _, err := svc.GetComponent(ctx, "GOG-0001"); err == nil {
		t.Error("stale component survived the reset")
	}

	comp, err := svc.GetComponent(ctx, "FRM-0001")
	if err != nil {
		t.Fatalf("seeded component missing: %v", err)
	}
	if comp.Manufacturer != "Armattan" || comp.SchemaData["wheelbase_mm"] != 220.0 {
		t.Errorf("seeded component = %+v", comp)
	}

	model, err := svc.GetModel(ctx, "DM-0001")
	if err != nil {
		t.Fatalf("seeded model missing: %v", err)
	}
	if model.Relations["frame"] != "FRM-0001" {
		t.Errorf("model relations = %v", model.Relations)
	}

	// Running the reset again converges to the same counts
	report, err = svc.ResetToGolden(ctx, goldenDoc())
	if err != nil {
		t.Fatalf("second ResetToGolden: %v", err)
	}
	if report.Categories != 2 || report.Components != 2 || report.Models != 1 {
		t.Errorf("second report = %+v", report)
	}
}

func TestResetToGoldenRejectsInvalidDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCatalogueService(db)
	ctx := context.Background()

	keep := testutil.SeedCategory(t, db, "frames", "Frames")
	testutil.SeedComponent(t, db, keep, "FRM-0001", "Keep me")

	_, err := svc.ResetToGolden(ctx, schema.Document{"schema_version": "v2"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	// Nothing was deleted on the failed attempt
	if _, err := svc.GetComponent(ctx, "FRM-0001"); err != nil {
		t.Errorf("component lost on rejected reset: %v", err)
	}
}
