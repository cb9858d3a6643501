package client

import "time"

const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

type User struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatarUrl"`
	ZoomLink   string `json:"zoomLink,omitempty"`
	WeeklyGoal int    `json:"weeklyGoal"`
}

func (u *User) Name() string {
	return CombineName(u.FirstName, u.LastName)
}

type Session struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CourseName      string    `json:"courseName"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"durationMinutes"`
	Capacity        int       `json:"capacity"`
	MentorID        uint      `json:"mentorId"`
	Mentor          *User     `json:"mentor,omitempty"`
	ZoomLink        string    `json:"zoomLink,omitempty"`
	RecordingURL    string    `json:"recordingUrl,omitempty"`
	Status          string    `json:"status"`
	Participants    []User    `json:"participants"`
}

type WeekBuckets struct {
	InProgress []Session `json:"inProgress"`
	Upcoming   []Session `json:"upcoming"`
	Past       []Session `json:"past"`
}

// Stats covers both roles; the server only fills the fields for the
// dashboard that was fetched.
type Stats struct {
	AttendedThisWeek int  `json:"attendedThisWeek"`
	UpcomingThisWeek int  `json:"upcomingThisWeek"`
	PlannedThisWeek  int  `json:"plannedThisWeek"`
	WeeklyGoal       int  `json:"weeklyGoal"`
	WeeklyGoalMet    bool `json:"weeklyGoalMet"`

	SessionsCreated   int64 `json:"sessionsCreated"`
	TotalParticipants int64 `json:"totalParticipants"`
	CompletedThisWeek int   `json:"completedThisWeek"`
}

type DashboardData struct {
	ThisWeek        WeekBuckets `json:"thisWeek"`
	MyRegistrations []uint      `json:"myRegistrations"`
	Stats           Stats       `json:"stats"`
}

type RosterEntry struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsPresent bool   `json:"isPresent"`
}

// ActionResult is the outcome of a mutating call, ready to show to a
// user. Errors never escape the stores as raw error values.
type ActionResult struct {
	Success bool
	Message string
}
