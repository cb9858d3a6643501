package model

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionOngoing   SessionStatus = "ongoing"
	SessionCompleted SessionStatus = "completed"
	SessionCanceled  SessionStatus = "canceled"
)

// swagger:model Session
type Session struct {
	BaseModel
	Title           string        `gorm:"size:255;not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	CourseName      string        `gorm:"size:255" json:"courseName"`
	Date            time.Time     `gorm:"index;not null" json:"date"`
	DurationMinutes int           `gorm:"default:60" json:"durationMinutes"`
	Capacity        int           `gorm:"not null" json:"capacity"`
	MentorID        uint          `gorm:"index;not null" json:"mentorId"`
	Mentor          *User         `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	ZoomLink        string        `gorm:"size:255" json:"zoomLink,omitempty"`
	RecordingURL    string        `gorm:"size:255" json:"recordingUrl,omitempty"`
	Status          SessionStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	Participants    []User        `gorm:"many2many:registrations;joinForeignKey:SessionID;joinReferences:UserID" json:"participants"`
}

func (Session) TableName() string {
	return "sessions"
}

// EndTime is the scheduled end of the session.
func (s *Session) EndTime() time.Time {
	return s.Date.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
