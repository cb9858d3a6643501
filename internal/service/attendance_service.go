package service

import (
	"errors"

	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"

	"gorm.io/gorm"
)

type AttendanceService struct {
	SessionRepo      *repository.SessionRepository
	RegistrationRepo *repository.RegistrationRepository
}

func NewAttendanceService(
	sessionRepo *repository.SessionRepository,
	registrationRepo *repository.RegistrationRepository,
) *AttendanceService {
	return &AttendanceService{
		SessionRepo:      sessionRepo,
		RegistrationRepo: registrationRepo,
	}
}

// GetRoster returns the attendance sheet for a mentor's own session. An
// empty roster is not an error; the client renders "no students enrolled".
func (s *AttendanceService) GetRoster(mentorID, sessionID uint) ([]repository.RosterEntry, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.MentorID != mentorID {
		return nil, util.ErrPermissionDenied
	}

	return s.RegistrationRepo.Roster(sessionID)
}

// Mark replaces the presence set: listed students become present, the rest
// absent. presentIDs must all be registered for the session; an empty list
// is a valid submission.
func (s *AttendanceService) Mark(mentorID, sessionID uint, presentIDs []uint) error {
	roster, err := s.GetRoster(mentorID, sessionID)
	if err != nil {
		return err
	}

	enrolled := make(map[uint]bool, len(roster))
	for _, entry := range roster {
		enrolled[entry.ID] = true
	}
	for _, id := range presentIDs {
		if !enrolled[id] {
			return util.ErrInvalidParticipants
		}
	}

	return s.RegistrationRepo.ReplaceAttendance(sessionID, presentIDs)
}
