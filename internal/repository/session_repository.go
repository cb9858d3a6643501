package repository

import (
	"mentorhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.Session, error) {
	var session model.Session
	err := r.DB.Preload("Mentor").Preload("Participants").First(&session, id).Error
	return &session, err
}

func (r *SessionRepository) Update(session *model.Session) error {
	return r.DB.Save(session).Error
}

func (r *SessionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Session{}, id).Error
}

func (r *SessionRepository) UpdateStatus(id uint, status model.SessionStatus) error {
	return r.DB.Model(&model.Session{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *SessionRepository) SetRecording(id uint, url string) error {
	return r.DB.Model(&model.Session{}).
		Where("id = ?", id).
		Update("recording_url", url).
		Error
}

// FindBetween lists sessions starting inside [from, to), oldest first,
// with mentor and participants preloaded for the dashboard payload.
func (r *SessionRepository) FindBetween(from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.DB.Preload("Mentor").Preload("Participants").
		Where("date >= ? AND date < ?", from, to).
		Order("date").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindByMentorBetween(mentorID uint, from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.DB.Preload("Mentor").Preload("Participants").
		Where("mentor_id = ? AND date >= ? AND date < ?", mentorID, from, to).
		Order("date").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) CountByMentor(mentorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Session{}).
		Where("mentor_id = ?", mentorID).
		Count(&count).Error
	return count, err
}
