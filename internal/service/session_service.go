package service

import (
	"errors"
	"time"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"

	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo      *repository.SessionRepository
	RegistrationRepo *repository.RegistrationRepository
	UserRepo         *repository.UserRepository
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	registrationRepo *repository.RegistrationRepository,
	userRepo *repository.UserRepository,
) *SessionService {
	return &SessionService{
		SessionRepo:      sessionRepo,
		RegistrationRepo: registrationRepo,
		UserRepo:         userRepo,
	}
}

type CreateSessionInput struct {
	Title           string
	Description     string
	CourseName      string
	Date            time.Time
	DurationMinutes int
	Capacity        int
	ZoomLink        string
}

func (s *SessionService) Create(mentorID uint, in CreateSessionInput) (*model.Session, error) {
	session := &model.Session{
		Title:           in.Title,
		Description:     in.Description,
		CourseName:      in.CourseName,
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Capacity:        in.Capacity,
		MentorID:        mentorID,
		ZoomLink:        in.ZoomLink,
		Status:          model.SessionScheduled,
	}

	if session.DurationMinutes <= 0 {
		session.DurationMinutes = 60
	}
	if session.ZoomLink == "" {
		// Mentors usually reuse their personal room.
		if mentor, err := s.UserRepo.FindByID(mentorID); err == nil {
			session.ZoomLink = mentor.ZoomLink
		}
	}

	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(id uint) (*model.Session, error) {
	session, err := s.SessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// getOwned loads a session and checks it belongs to the mentor.
func (s *SessionService) getOwned(mentorID, sessionID uint) (*model.Session, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.MentorID != mentorID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

type UpdateSessionInput struct {
	Title           *string
	Description     *string
	CourseName      *string
	Date            *time.Time
	DurationMinutes *int
	Capacity        *int
	ZoomLink        *string
}

func (s *SessionService) Update(mentorID, sessionID uint, in UpdateSessionInput) (*model.Session, error) {
	session, err := s.getOwned(mentorID, sessionID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		session.Title = *in.Title
	}
	if in.Description != nil {
		session.Description = *in.Description
	}
	if in.CourseName != nil {
		session.CourseName = *in.CourseName
	}
	if in.Date != nil {
		session.Date = *in.Date
	}
	if in.DurationMinutes != nil {
		session.DurationMinutes = *in.DurationMinutes
	}
	if in.Capacity != nil {
		// Capacity can never drop below the current head count.
		count, err := s.RegistrationRepo.CountBySession(sessionID)
		if err != nil {
			return nil, err
		}
		if int64(*in.Capacity) < count {
			return nil, util.ErrSessionFull
		}
		session.Capacity = *in.Capacity
	}
	if in.ZoomLink != nil {
		session.ZoomLink = *in.ZoomLink
	}

	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Delete(mentorID, sessionID uint) error {
	if _, err := s.getOwned(mentorID, sessionID); err != nil {
		return err
	}
	return s.SessionRepo.Delete(sessionID)
}

// Transition moves a session through its lifecycle. Valid moves:
// scheduled→ongoing (start), ongoing→completed (end),
// scheduled|ongoing→canceled (cancel). Everything else is rejected.
func (s *SessionService) Transition(mentorID, sessionID uint, target model.SessionStatus) (*model.Session, error) {
	session, err := s.getOwned(mentorID, sessionID)
	if err != nil {
		return nil, err
	}

	valid := false
	switch target {
	case model.SessionOngoing:
		valid = session.Status == model.SessionScheduled
	case model.SessionCompleted:
		valid = session.Status == model.SessionOngoing
	case model.SessionCanceled:
		valid = session.Status == model.SessionScheduled || session.Status == model.SessionOngoing
	}
	if !valid {
		return nil, util.ErrInvalidTransition
	}

	if err := s.SessionRepo.UpdateStatus(sessionID, target); err != nil {
		return nil, err
	}
	session.Status = target
	return session, nil
}

// Register books a student onto a session. The capacity guard lives in the
// registration repository; every failure maps to one sentinel so the
// controller can pick the right status code and message.
func (s *SessionService) Register(studentID, sessionID uint) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	// A canceled session is reported as gone, matching the client's
	// "it may have been canceled" messaging.
	if session.Status == model.SessionCanceled {
		return util.ErrSessionNotFound
	}
	if session.Status != model.SessionScheduled {
		return util.ErrSessionStarted
	}

	inserted, err := s.RegistrationRepo.Register(sessionID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrAlreadyRegistered
		}
		return err
	}
	if !inserted {
		return util.ErrSessionFull
	}
	return nil
}

func (s *SessionService) Unregister(studentID, sessionID uint) error {
	if _, err := s.Get(sessionID); err != nil {
		return err
	}

	removed, err := s.RegistrationRepo.Unregister(sessionID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrRegistrationNotFound
	}
	return nil
}

// AttachRecording publishes a recording URL on a completed session.
func (s *SessionService) AttachRecording(mentorID, sessionID uint, url string) (*model.Session, error) {
	session, err := s.getOwned(mentorID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionCompleted {
		return nil, util.ErrInvalidTransition
	}

	if err := s.SessionRepo.SetRecording(sessionID, url); err != nil {
		return nil, err
	}
	session.RecordingURL = url
	return session, nil
}
