package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/testutil"
)

func newSessionService(t *testing.T, db *gorm.DB) *SessionService {
	repos := repository.NewRepositories(db)
	photos := NewPhotoStore(nil, "", t.TempDir())
	return NewSessionService(repos.Session, repos.Guide, nil, photos, zap.NewNop())
}

func TestSessionCreateAllocatesSequentialSerials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 3)

	first, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01", BuilderName: "Sam"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	prefix := serialDatePrefix(time.Now())
	if !strings.HasPrefix(first.SerialNumber, prefix) {
		t.Errorf("serial = %q, want prefix %q", first.SerialNumber, prefix)
	}
	if first.SerialNumber != prefix+"0001" {
		t.Errorf("first serial = %q", first.SerialNumber)
	}
	if second.SerialNumber != prefix+"0002" {
		t.Errorf("second serial = %q", second.SerialNumber)
	}
	if first.Status != entity.SessionStatusInProgress {
		t.Errorf("status = %q", first.Status)
	}
}

func TestSessionCreateUnknownGuide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)

	_, err := svc.Create(context.Background(), SessionInput{GuidePID: "BG-MISSING"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Create = %v, want ErrNotFound", err)
	}
}

func TestSessionSerialsContinueAfterExistingRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	guide := testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 2)
	prefix := serialDatePrefix(time.Now())
	testutil.SeedSession(t, db, guide, prefix+"0007")

	created, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.SerialNumber != prefix+"0008" {
		t.Errorf("serial = %q, want continuation after 0007", created.SerialNumber)
	}
}

func TestSessionUpdateProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 3)
	sess, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	step := 2
	notes := "ESC soldered"
	updated, err := svc.Update(ctx, sess.SerialNumber, SessionUpdate{
		CurrentStep: &step,
		Notes:       &notes,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CurrentStep != 2 || updated.Notes != "ESC soldered" {
		t.Errorf("updated = %+v", updated)
	}
	// Fields absent from the payload stay as they were
	if updated.Status != entity.SessionStatusInProgress {
		t.Errorf("status = %q", updated.Status)
	}
}

func TestSessionCompletionStampsTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 1)
	sess, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, sess.SerialNumber, SessionUpdate{Status: entity.SessionStatusCompleted})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt not set on completion")
	}

	// Completing an already-completed session keeps the original stamp
	stored, err := svc.Get(ctx, sess.SerialNumber)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stamp := *stored.CompletedAt
	updated, err = svc.Update(ctx, sess.SerialNumber, SessionUpdate{Status: entity.SessionStatusCompleted})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(stamp) {
		t.Errorf("CompletedAt = %v, want unchanged %v", updated.CompletedAt, stamp)
	}
}

func TestSessionUpdateRejectsBadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 1)
	sess, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, sess.SerialNumber, SessionUpdate{Status: "paused"})
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("Update = %v", err)
	}
}

func TestSessionDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newSessionService(t, db)
	ctx := context.Background()

	testutil.SeedGuide(t, db, "BG-TEST-01", "Test Build", 1)
	sess, err := svc.Create(ctx, SessionInput{GuidePID: "BG-TEST-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, sess.SerialNumber); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, sess.SerialNumber); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
}
