package repository

import (
	"context"
	"errors"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"gorm.io/gorm"
)

// SessionRepository build session store keyed externally by serial number
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) FindBySerial(ctx context.Context, serial string) (*entity.BuildSession, error) {
	var session entity.BuildSession
	err := r.db.WithContext(ctx).
		Preload("Guide").
		Where("serial_number = ?", serial).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]entity.BuildSession, error) {
	var sessions []entity.BuildSession
	err := r.db.WithContext(ctx).Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}

// MaxSerialWithPrefix returns the lexicographically last serial number with
// the given prefix, or "" when none exists
func (r *SessionRepository) MaxSerialWithPrefix(ctx context.Context, prefix string) (string, error) {
	var serial string
	err := r.db.WithContext(ctx).
		Model(&entity.BuildSession{}).
		Select("serial_number").
		Where("serial_number LIKE ?", prefix+"%").
		Order("serial_number DESC").
		Limit(1).
		Scan(&serial).Error
	return serial, err
}

// CreateWithSerial derives the session's serial number and inserts it inside
// one transaction, so two concurrent creations cannot observe the same max.
func (r *SessionRepository) CreateWithSerial(ctx context.Context, session *entity.BuildSession, derive func(maxExisting string) string, prefix string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSerial string
		err := tx.Model(&entity.BuildSession{}).
			Select("serial_number").
			Where("serial_number LIKE ?", prefix+"%").
			Order("serial_number DESC").
			Limit(1).
			Scan(&maxSerial).Error
		if err != nil {
			return err
		}
		session.SerialNumber = derive(maxSerial)
		return tx.Create(session).Error
	})
}

// Create inserts a session whose serial number is already assigned
func (r *SessionRepository) Create(ctx context.Context, session *entity.BuildSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.BuildSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete removes a session and its photos
func (r *SessionRepository) Delete(ctx context.Context, serial string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entity.BuildSession
		if err := tx.Where("serial_number = ?", serial).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&entity.StepPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
}

// CreatePhoto attaches a photo to a session
func (r *SessionRepository) CreatePhoto(ctx context.Context, photo *entity.StepPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// ListPhotos returns a session's photos in capture order
func (r *SessionRepository) ListPhotos(ctx context.Context, sessionID string) ([]entity.StepPhoto, error) {
	var photos []entity.StepPhoto
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("captured_at ASC").
		Find(&photos).Error
	return photos, err
}
