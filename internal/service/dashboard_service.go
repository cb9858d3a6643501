package service

import (
	"time"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"
)

type DashboardService struct {
	UserRepo         *repository.UserRepository
	SessionRepo      *repository.SessionRepository
	RegistrationRepo *repository.RegistrationRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	registrationRepo *repository.RegistrationRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:         userRepo,
		SessionRepo:      sessionRepo,
		RegistrationRepo: registrationRepo,
	}
}

// WeekBuckets groups this week's sessions by where they sit relative to
// now. Bucketing is recomputed on every fetch; clients only mirror it.
type WeekBuckets struct {
	InProgress []model.Session `json:"inProgress"`
	Upcoming   []model.Session `json:"upcoming"`
	Past       []model.Session `json:"past"`
}

type StudentStats struct {
	AttendedThisWeek int  `json:"attendedThisWeek"`
	UpcomingThisWeek int  `json:"upcomingThisWeek"`
	PlannedThisWeek  int  `json:"plannedThisWeek"`
	WeeklyGoal       int  `json:"weeklyGoal"`
	WeeklyGoalMet    bool `json:"weeklyGoalMet"`
}

type StudentDashboard struct {
	ThisWeek        WeekBuckets  `json:"thisWeek"`
	MyRegistrations []uint       `json:"myRegistrations"`
	Stats           StudentStats `json:"stats"`
}

type MentorStats struct {
	SessionsCreated   int64 `json:"sessionsCreated"`
	TotalParticipants int64 `json:"totalParticipants"`
	CompletedThisWeek int   `json:"completedThisWeek"`
}

type MentorDashboard struct {
	ThisWeek WeekBuckets `json:"thisWeek"`
	Stats    MentorStats `json:"stats"`
}

// Bucket is where a session sits relative to now, purely a function of
// its start time and duration. Status never moves a session between
// buckets; it only gates actions on the client.
type Bucket int

const (
	BucketUpcoming Bucket = iota
	BucketInProgress
	BucketPast
)

func BucketOf(session *model.Session, now time.Time) Bucket {
	if !now.Before(session.EndTime()) {
		return BucketPast
	}
	if !now.Before(session.Date) {
		return BucketInProgress
	}
	return BucketUpcoming
}

// WeekBounds returns [Monday 00:00, next Monday 00:00) for the week
// containing t, in t's location.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	year, month, day := t.Date()
	monday := time.Date(year, month, day, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -(weekday - 1))
	return monday, monday.AddDate(0, 0, 7)
}

func bucketize(sessions []model.Session, now time.Time) WeekBuckets {
	buckets := WeekBuckets{
		InProgress: []model.Session{},
		Upcoming:   []model.Session{},
		Past:       []model.Session{},
	}
	for _, session := range sessions {
		switch BucketOf(&session, now) {
		case BucketInProgress:
			buckets.InProgress = append(buckets.InProgress, session)
		case BucketUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, session)
		case BucketPast:
			buckets.Past = append(buckets.Past, session)
		}
	}
	return buckets
}

func (s *DashboardService) GetStudentDashboard(userID uint, now time.Time) (*StudentDashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := WeekBounds(now)
	sessions, err := s.SessionRepo.FindBetween(weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	registrations, err := s.RegistrationRepo.SessionIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	registered := make(map[uint]bool, len(registrations))
	for _, id := range registrations {
		registered[id] = true
	}

	attended, err := s.RegistrationRepo.CountAttendedBetween(userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	buckets := bucketize(sessions, now)

	upcomingMine := 0
	for _, session := range buckets.Upcoming {
		if registered[session.ID] && session.Status == model.SessionScheduled {
			upcomingMine++
		}
	}
	plannedMine := 0
	for _, session := range sessions {
		if registered[session.ID] && session.Status != model.SessionCanceled {
			plannedMine++
		}
	}

	goal := user.WeeklyGoal
	if goal == 0 {
		goal = 3
	}

	return &StudentDashboard{
		ThisWeek:        buckets,
		MyRegistrations: registrations,
		Stats: StudentStats{
			AttendedThisWeek: int(attended),
			UpcomingThisWeek: upcomingMine,
			PlannedThisWeek:  plannedMine,
			WeeklyGoal:       goal,
			WeeklyGoalMet:    int(attended) >= goal,
		},
	}, nil
}

func (s *DashboardService) GetMentorDashboard(mentorID uint, now time.Time) (*MentorDashboard, error) {
	weekStart, weekEnd := WeekBounds(now)
	sessions, err := s.SessionRepo.FindByMentorBetween(mentorID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	created, err := s.SessionRepo.CountByMentor(mentorID)
	if err != nil {
		return nil, err
	}

	participants, err := s.RegistrationRepo.TotalParticipantsByMentor(mentorID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, session := range sessions {
		if session.Status == model.SessionCompleted {
			completed++
		}
	}

	return &MentorDashboard{
		ThisWeek: bucketize(sessions, now),
		Stats: MentorStats{
			SessionsCreated:   created,
			TotalParticipants: participants,
			CompletedThisWeek: completed,
		},
	}, nil
}

// UpdateWeeklyGoal validates the target before touching storage; the SDK
// performs the same check before any network call.
func (s *DashboardService) UpdateWeeklyGoal(userID uint, goal int) error {
	if goal < util.MinWeeklyGoal || goal > util.MaxWeeklyGoal {
		return util.ErrInvalidWeeklyGoal
	}
	return s.UserRepo.UpdateWeeklyGoal(userID, goal)
}
