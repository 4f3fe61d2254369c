package repository

import (
	"github.com/lunora-app/lunora/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	Save(session *model.Session) error
	FindByID(id string) (*model.Session, error)
	FindAllByUser(userID string) ([]model.Session, error)
	FindAllByUserAndSubject(userID, subject string) ([]model.Session, error)
	Delete(id string) error
	// DeleteAllByUserAndSubject removes every matching session in one
	// transaction and returns the IDs it removed so mirror entries can be
	// pruned. A failed transaction removes nothing.
	DeleteAllByUserAndSubject(userID, subject string) ([]string, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) Save(session *model.Session) error {
	// Save replaces the full row, including the jsonb document columns.
	// Session writes are whole-document by design, matching the mirror's
	// full-replace semantics.
	return r.db.Save(session).Error
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUser(userID string) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindAllByUserAndSubject(userID, subject string) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.Where("user_id = ? AND subject = ?", userID, subject).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteAllByUserAndSubject(userID, subject string) ([]string, error) {
	var ids []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Session{}).
			Where("user_id = ? AND subject = ?", userID, subject).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&model.Session{}).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
