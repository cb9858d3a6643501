package service

import (
	"errors"
	"testing"
	"time"

	"mentorhub_backend/internal/util"
)

func TestEmptyRoster(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(-2*time.Hour))

	roster, err := svc.GetRoster(mentor.ID, session.ID)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("expected empty roster, got %d entries", len(roster))
	}

	// Submitting an empty sheet against an empty roster is a no-op, not
	// an error.
	if err := svc.Mark(mentor.ID, session.ID, nil); err != nil {
		t.Errorf("marking empty roster failed: %v", err)
	}
}

func TestMarkReplacesPresenceSet(t *testing.T) {
	db := newTestDB(t)
	sessions := newSessionService(db)
	svc := newAttendanceService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(-2*time.Hour))

	a := seedStudent(t, db, 1)
	b := seedStudent(t, db, 2)
	c := seedStudent(t, db, 3)
	for _, student := range []uint{a.ID, b.ID, c.ID} {
		if err := sessions.Register(student, session.ID); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}

	present := func(t *testing.T) map[uint]bool {
		t.Helper()
		roster, err := svc.GetRoster(mentor.ID, session.ID)
		if err != nil {
			t.Fatalf("roster failed: %v", err)
		}
		out := make(map[uint]bool, len(roster))
		for _, entry := range roster {
			out[entry.ID] = entry.IsPresent
		}
		return out
	}

	if err := svc.Mark(mentor.ID, session.ID, []uint{a.ID, b.ID}); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got := present(t)
	if !got[a.ID] || !got[b.ID] || got[c.ID] {
		t.Errorf("after first mark: %v, want a and b present", got)
	}

	// A re-submission replaces the set, it does not merge.
	if err := svc.Mark(mentor.ID, session.ID, []uint{c.ID}); err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	got = present(t)
	if got[a.ID] || got[b.ID] || !got[c.ID] {
		t.Errorf("after second mark: %v, want only c present", got)
	}

	// An empty sheet clears everyone.
	if err := svc.Mark(mentor.ID, session.ID, []uint{}); err != nil {
		t.Fatalf("clearing mark failed: %v", err)
	}
	got = present(t)
	if got[a.ID] || got[b.ID] || got[c.ID] {
		t.Errorf("after clearing: %v, want nobody present", got)
	}
}

func TestMarkRejectsNonParticipants(t *testing.T) {
	db := newTestDB(t)
	sessions := newSessionService(db)
	svc := newAttendanceService(db)

	mentor := seedMentor(t, db)
	session := seedSession(t, db, mentor.ID, 10, time.Now().Add(-2*time.Hour))

	registered := seedStudent(t, db, 1)
	stranger := seedStudent(t, db, 2)
	if err := sessions.Register(registered.ID, session.ID); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	err := svc.Mark(mentor.ID, session.ID, []uint{registered.ID, stranger.ID})
	if !errors.Is(err, util.ErrInvalidParticipants) {
		t.Fatalf("expected ErrInvalidParticipants, got %v", err)
	}

	// The invalid submission must not have touched the sheet.
	roster, err := svc.GetRoster(mentor.ID, session.ID)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	for _, entry := range roster {
		if entry.IsPresent {
			t.Errorf("student %d marked present by a rejected submission", entry.ID)
		}
	}
}

func TestRosterOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)

	owner := seedMentor(t, db)
	intruder := seedMentor(t, db)
	session := seedSession(t, db, owner.ID, 10, time.Now().Add(-2*time.Hour))

	if _, err := svc.GetRoster(intruder.ID, session.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := svc.Mark(intruder.ID, session.ID, nil); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestRosterMissingSession(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	mentor := seedMentor(t, db)

	if _, err := svc.GetRoster(mentor.ID, 9999); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// A database failure must surface as itself, not masquerade as a
	// missing session.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get raw connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
	if _, err := svc.GetRoster(mentor.ID, 9999); err == nil || errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("database failure reported as %v", err)
	}
}
