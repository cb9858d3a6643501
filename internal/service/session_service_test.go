package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/util"
)

// TestConcurrentRegistration fires 50 students at a session with 5
// spots and expects exactly 5 to get in.
func TestConcurrentRegistration(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 5, time.Now().Add(48*time.Hour))

	concurrency := 50
	students := make([]*model.User, concurrency)
	for i := 0; i < concurrency; i++ {
		students[i] = seedStudent(t, db, i)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	fullCount := 0

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			err := svc.Register(studentID, session.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successCount++
			case errors.Is(err, util.ErrSessionFull):
				fullCount++
			default:
				t.Errorf("unexpected registration error: %v", err)
			}
		}(students[i].ID)
	}
	wg.Wait()

	if successCount != 5 {
		t.Errorf("expected 5 successful registrations, got %d", successCount)
	}
	if fullCount != concurrency-5 {
		t.Errorf("expected %d rejections, got %d", concurrency-5, fullCount)
	}

	var count int64
	db.Model(&model.Registration{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 5 {
		t.Errorf("expected 5 rows in registrations, got %d", count)
	}
}

func TestRegisterAtCapacityLeavesStateUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 2, time.Now().Add(24*time.Hour))

	a := seedStudent(t, db, 1)
	b := seedStudent(t, db, 2)
	late := seedStudent(t, db, 3)

	if err := svc.Register(a.ID, session.ID); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := svc.Register(b.ID, session.ID); err != nil {
		t.Fatalf("second registration failed: %v", err)
	}

	if err := svc.Register(late.ID, session.ID); !errors.Is(err, util.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}

	var count int64
	db.Model(&model.Registration{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 2 {
		t.Errorf("failed registration changed state: %d rows", count)
	}
}

func TestRegisterTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(24*time.Hour))
	student := seedStudent(t, db, 1)

	if err := svc.Register(student.ID, session.ID); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := svc.Register(student.ID, session.ID); !errors.Is(err, util.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestUnregisterIdempotence(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(24*time.Hour))
	student := seedStudent(t, db, 1)

	if err := svc.Register(student.ID, session.ID); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := svc.Unregister(student.ID, session.ID); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if err := svc.Unregister(student.ID, session.ID); !errors.Is(err, util.ErrRegistrationNotFound) {
		t.Fatalf("expected ErrRegistrationNotFound on repeat unregister, got %v", err)
	}

	// The spot freed up, so someone else can take it.
	other := seedStudent(t, db, 2)
	if err := svc.Register(other.ID, session.ID); err != nil {
		t.Fatalf("registration after unregister failed: %v", err)
	}
}

func TestRegisterOnCanceledSession(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(24*time.Hour))
	student := seedStudent(t, db, 1)

	if _, err := svc.Transition(mentor.ID, session.ID, model.SessionCanceled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := svc.Register(student.ID, session.ID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for canceled session, got %v", err)
	}
}

func TestRegisterAfterStart(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(time.Hour))
	student := seedStudent(t, db, 1)

	if _, err := svc.Transition(mentor.ID, session.ID, model.SessionOngoing); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Register(student.ID, session.ID); !errors.Is(err, util.ErrSessionStarted) {
		t.Fatalf("expected ErrSessionStarted, got %v", err)
	}
}

func TestTransitionRules(t *testing.T) {
	cases := []struct {
		name   string
		from   model.SessionStatus
		to     model.SessionStatus
		wantOK bool
	}{
		{"start scheduled", model.SessionScheduled, model.SessionOngoing, true},
		{"end ongoing", model.SessionOngoing, model.SessionCompleted, true},
		{"cancel scheduled", model.SessionScheduled, model.SessionCanceled, true},
		{"cancel ongoing", model.SessionOngoing, model.SessionCanceled, true},
		{"end scheduled", model.SessionScheduled, model.SessionCompleted, false},
		{"start completed", model.SessionCompleted, model.SessionOngoing, false},
		{"cancel completed", model.SessionCompleted, model.SessionCanceled, false},
		{"cancel canceled", model.SessionCanceled, model.SessionCanceled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := newSessionService(db)

			mentor := seedMentor(t, db)
			session := seedSession(t, db, mentor.ID, 10, time.Now().Add(time.Hour))
			if tc.from != model.SessionScheduled {
				if err := db.Model(session).Update("status", tc.from).Error; err != nil {
					t.Fatalf("failed to set status: %v", err)
				}
			}

			_, err := svc.Transition(mentor.ID, session.ID, tc.to)
			if tc.wantOK && err != nil {
				t.Fatalf("expected transition to succeed, got %v", err)
			}
			if !tc.wantOK && !errors.Is(err, util.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestTransitionOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	owner := seedMentor(t, db)
	intruder := seedMentor(t, db)
	session := seedSession(t, db, owner.ID, 10, time.Now().Add(time.Hour))

	if _, err := svc.Transition(intruder.ID, session.ID, model.SessionOngoing); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestUpdateCapacityBelowHeadCount(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 5, time.Now().Add(24*time.Hour))
	for i := 0; i < 3; i++ {
		student := seedStudent(t, db, i)
		if err := svc.Register(student.ID, session.ID); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}

	two := 2
	if _, err := svc.Update(mentor.ID, session.ID, UpdateSessionInput{Capacity: &two}); !errors.Is(err, util.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull shrinking below head count, got %v", err)
	}

	four := 4
	if _, err := svc.Update(mentor.ID, session.ID, UpdateSessionInput{Capacity: &four}); err != nil {
		t.Fatalf("expected shrink to 4 to succeed, got %v", err)
	}
}

func TestCreateDefaultsAndZoomInheritance(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session, err := svc.Create(mentor.ID, CreateSessionInput{
		Title:    "Code Review Clinic",
		Date:     time.Now().Add(24 * time.Hour),
		Capacity: 8,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.DurationMinutes != 60 {
		t.Errorf("expected default duration 60, got %d", session.DurationMinutes)
	}
	if session.ZoomLink != mentor.ZoomLink {
		t.Errorf("expected inherited zoom link %q, got %q", mentor.ZoomLink, session.ZoomLink)
	}
	if session.Status != model.SessionScheduled {
		t.Errorf("expected new session to be scheduled, got %s", session.Status)
	}
}

func TestAttachRecordingOnlyWhenCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(-2*time.Hour))

	if _, err := svc.AttachRecording(mentor.ID, session.ID, "https://cdn.example.com/rec.mp4"); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on scheduled session, got %v", err)
	}

	if _, err := svc.Transition(mentor.ID, session.ID, model.SessionOngoing); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.Transition(mentor.ID, session.ID, model.SessionCompleted); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	updated, err := svc.AttachRecording(mentor.ID, session.ID, "https://cdn.example.com/rec.mp4")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if updated.RecordingURL == "" {
		t.Error("recording URL not set")
	}
}
