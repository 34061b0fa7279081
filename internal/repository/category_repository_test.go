package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/testutil"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"frames", "Frames"},
		{"flight_controllers", "Flight Controllers"},
		{"fpv_cameras", "Fpv Cameras"},
		{"gps", "Gps"},
	}
	for _, tt := range tests {
		if got := repository.DisplayName(tt.slug); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestGetOrCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	created, err := repos.Category.GetOrCreate(ctx, "flight_controllers")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created.Name != "Flight Controllers" {
		t.Errorf("derived name = %q", created.Name)
	}

	// A second call resolves the same row instead of duplicating it
	again, err := repos.Category.GetOrCreate(ctx, "flight_controllers")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("IDs differ: %q vs %q", again.ID, created.ID)
	}
}

func TestComponentDeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	err := repos.Component.Delete(context.Background(), "FRM-9999")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestMaxSerialWithPrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	guide := testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 1)
	testutil.SeedSession(t, db, guide, "DC-20250101-0002")
	testutil.SeedSession(t, db, guide, "DC-20250101-0010")
	testutil.SeedSession(t, db, guide, "DC-20250102-0001")

	max, err := repos.Session.MaxSerialWithPrefix(ctx, "DC-20250101-")
	if err != nil {
		t.Fatalf("MaxSerialWithPrefix: %v", err)
	}
	if max != "DC-20250101-0010" {
		t.Errorf("max = %q", max)
	}

	max, err = repos.Session.MaxSerialWithPrefix(ctx, "DC-20250103-")
	if err != nil {
		t.Fatalf("MaxSerialWithPrefix: %v", err)
	}
	if max != "" {
		t.Errorf("max for empty day = %q", max)
	}
}
