package repository

import (
	"strings"
	"time"

	"mentorhub_backend/internal/model"

	"gorm.io/gorm"
)

type RegistrationRepository struct {
	DB *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

// isDuplicate reports whether a driver error is a unique-key violation.
// MySQL says "Duplicate entry", SQLite says "UNIQUE constraint failed".
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}

// Register inserts a registration only while the session still has a free
// spot. The capacity check and the insert are a single guarded statement,
// so concurrent registrations cannot oversell the session. Returns false
// when the guard rejected the insert (session full or missing).
func (r *RegistrationRepository) Register(sessionID, userID uint) (bool, error) {
	res := r.DB.Exec(`
		INSERT INTO registrations (session_id, user_id, created_at, attended)
		SELECT s.id, ?, ?, ?
		FROM sessions s
		WHERE s.id = ? AND s.deleted_at IS NULL
		  AND (SELECT COUNT(*) FROM registrations reg WHERE reg.session_id = s.id) < s.capacity`,
		userID, time.Now(), false, sessionID)

	if res.Error != nil {
		if isDuplicate(res.Error) {
			return false, gorm.ErrDuplicatedKey
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Unregister removes a registration. Returns false when none existed,
// which callers treat as idempotent success or not-found as they see fit.
func (r *RegistrationRepository) Unregister(sessionID, userID uint) (bool, error) {
	res := r.DB.Where("session_id = ? AND user_id = ?", sessionID, userID).
		Delete(&model.Registration{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *RegistrationRepository) SessionIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Registration{}).
		Where("user_id = ?", userID).
		Pluck("session_id", &ids).Error
	return ids, err
}

func (r *RegistrationRepository) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Registration{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

// RosterEntry is one student on a session's attendance sheet.
type RosterEntry struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsPresent bool   `json:"isPresent"`
}

func (r *RegistrationRepository) Roster(sessionID uint) ([]RosterEntry, error) {
	entries := []RosterEntry{}
	err := r.DB.Table("registrations").
		Select("users.id, users.first_name, users.last_name, users.email, registrations.attended AS is_present").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.session_id = ?", sessionID).
		Order("users.first_name, users.last_name").
		Scan(&entries).Error
	return entries, err
}

// ReplaceAttendance overwrites the presence set for a session: everyone in
// presentIDs is marked present, everyone else absent. An empty set is a
// valid submission and clears all flags.
func (r *RegistrationRepository) ReplaceAttendance(sessionID uint, presentIDs []uint) error {
	now := time.Now()
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Registration{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]interface{}{"attended": false, "attendance_marked_at": now}).
			Error; err != nil {
			return err
		}
		if len(presentIDs) == 0 {
			return nil
		}
		return tx.Model(&model.Registration{}).
			Where("session_id = ? AND user_id IN ?", sessionID, presentIDs).
			Update("attended", true).
			Error
	})
}

func (r *RegistrationRepository) CountAttendedBetween(userID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.Table("registrations").
		Joins("JOIN sessions ON sessions.id = registrations.session_id").
		Where("sessions.deleted_at IS NULL").
		Where("registrations.user_id = ? AND registrations.attended = ?", userID, true).
		Where("sessions.date >= ? AND sessions.date < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *RegistrationRepository) TotalParticipantsByMentor(mentorID uint) (int64, error) {
	var count int64
	err := r.DB.Table("registrations").
		Joins("JOIN sessions ON sessions.id = registrations.session_id").
		Where("sessions.deleted_at IS NULL").
		Where("sessions.mentor_id = ?", mentorID).
		Count(&count).Error
	return count, err
}
