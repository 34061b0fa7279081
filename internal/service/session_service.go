package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
)

// ErrStepNotInGuide the referenced step belongs to a different guide than the
// session's
var ErrStepNotInGuide = errors.New("step does not belong to the session's guide")

var validSessionStatuses = map[string]bool{
	entity.SessionStatusInProgress: true,
	entity.SessionStatusCompleted:  true,
	entity.SessionStatusAbandoned:  true,
}

// SessionService build sessions, their serial numbers and step photos.
// Serials come from a per-day Redis counter when Redis is configured; without
// it, allocation falls back to a transactional max-scan in the store.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	guideRepo   *repository.GuideRepository
	rdb         *redis.Client
	photos      *PhotoStore
	logger      *zap.Logger
}

func NewSessionService(sessionRepo *repository.SessionRepository, guideRepo *repository.GuideRepository, rdb *redis.Client, photos *PhotoStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		guideRepo:   guideRepo,
		rdb:         rdb,
		photos:      photos,
		logger:      logger,
	}
}

// SessionInput session create payload
type SessionInput struct {
	GuidePID           string                 `json:"guide_pid" binding:"required"`
	BuilderName        string                 `json:"builder_name"`
	Notes              string                 `json:"notes"`
	ComponentChecklist map[string]interface{} `json:"component_checklist"`
}

// SessionUpdate session progress payload
type SessionUpdate struct {
	CurrentStep        *int                   `json:"current_step"`
	Status             string                 `json:"status"`
	Notes              *string                `json:"notes"`
	ComponentChecklist map[string]interface{} `json:"component_checklist"`
	BuilderName        *string                `json:"builder_name"`
}

func (s *SessionService) List(ctx context.Context) ([]entity.BuildSession, error) {
	return s.sessionRepo.List(ctx)
}

func (s *SessionService) Get(ctx context.Context, serial string) (*entity.BuildSession, error) {
	return s.sessionRepo.FindBySerial(ctx, serial)
}

// Create starts a session for a guide and allocates its serial number
func (s *SessionService) Create(ctx context.Context, input SessionInput) (*entity.BuildSession, error) {
	guide, err := s.guideRepo.FindByPID(ctx, input.GuidePID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.BuildSession{
		ID:                 repository.NewID(),
		GuideID:            guide.ID,
		StartedAt:          now,
		CurrentStep:        0,
		Status:             entity.SessionStatusInProgress,
		Notes:              input.Notes,
		ComponentChecklist: input.ComponentChecklist,
		BuilderName:        input.BuilderName,
	}

	datePrefix := serialDatePrefix(now)
	if s.rdb != nil {
		serial, err := s.allocateSerialRedis(ctx, datePrefix)
		if err != nil {
			s.logger.Warn("Redis serial allocation failed, using store fallback", zap.Error(err))
		} else {
			session.SerialNumber = serial
			if err := s.sessionRepo.Create(ctx, session); err != nil {
				return nil, fmt.Errorf("create session: %w", err)
			}
			session.Guide = guide
			return session, nil
		}
	}

	err = s.sessionRepo.CreateWithSerial(ctx, session, func(maxExisting string) string {
		return nextSerial(datePrefix, maxExisting)
	}, datePrefix)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Guide = guide
	return session, nil
}

// allocateSerialRedis draws the next sequence from a date-keyed counter. A
// counter seeing its first increment of the day is reconciled against the
// store, so a flushed Redis cannot reissue serials.
func (s *SessionService) allocateSerialRedis(ctx context.Context, datePrefix string) (string, error) {
	key := "droneclear:build_serial:" + datePrefix
	seq, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if seq == 1 {
		maxExisting, err := s.sessionRepo.MaxSerialWithPrefix(ctx, datePrefix)
		if err != nil {
			return "", err
		}
		if existing := parseSerialSeq(maxExisting, datePrefix); existing >= seq {
			seq = existing + 1
			if err := s.rdb.Set(ctx, key, seq, 48*time.Hour).Err(); err != nil {
				return "", err
			}
		}
	}
	s.rdb.Expire(ctx, key, 48*time.Hour)
	return formatSerial(datePrefix, seq), nil
}

// Update applies session progress fields; absent fields are left alone
func (s *SessionService) Update(ctx context.Context, serial string, input SessionUpdate) (*entity.BuildSession, error) {
	session, err := s.sessionRepo.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}

	if input.CurrentStep != nil {
		session.CurrentStep = *input.CurrentStep
	}
	if input.Status != "" {
		if !validSessionStatuses[input.Status] {
			return nil, fmt.Errorf("invalid status %q", input.Status)
		}
		if input.Status == entity.SessionStatusCompleted && session.Status != entity.SessionStatusCompleted {
			now := time.Now()
			session.CompletedAt = &now
		}
		session.Status = input.Status
	}
	if input.Notes != nil {
		session.Notes = *input.Notes
	}
	if input.ComponentChecklist != nil {
		session.ComponentChecklist = input.ComponentChecklist
	}
	if input.BuilderName != nil {
		session.BuilderName = *input.BuilderName
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, serial string) error {
	return s.sessionRepo.Delete(ctx, serial)
}

// ListPhotos returns a session's photos in capture order
func (s *SessionService) ListPhotos(ctx context.Context, serial string) ([]entity.StepPhoto, error) {
	session, err := s.sessionRepo.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.ListPhotos(ctx, session.ID)
}

// AddPhoto stores an uploaded image and attaches it to the session at the
// given step. The step must belong to the session's guide.
func (s *SessionService) AddPhoto(ctx context.Context, serial, stepID, notes string, file *multipart.FileHeader) (*entity.StepPhoto, error) {
	session, err := s.sessionRepo.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}

	step, err := s.guideRepo.FindStep(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if step.GuideID != session.GuideID {
		return nil, ErrStepNotInGuide
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	now := time.Now()
	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("build_photos/%s/%s-step%02d-%d%s",
		now.Format("2006/01/02"), session.SerialNumber, step.Order, now.UnixNano(), ext)

	path, err := s.photos.Save(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	photo := &entity.StepPhoto{
		ID:         repository.NewID(),
		SessionID:  session.ID,
		StepID:     step.ID,
		ImagePath:  path,
		Notes:      notes,
		CapturedAt: now,
	}
	if err := s.sessionRepo.CreatePhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("save photo record: %w", err)
	}
	return photo, nil
}
