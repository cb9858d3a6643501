package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// AuthCookieName is the HttpOnly cookie carrying the session JWT. The web
// client authenticates with cookie credentials rather than a header.
const AuthCookieName = "token"

// Weekly goal bounds, enforced in both the SDK and the service.
const (
	MinWeeklyGoal = 1
	MaxWeeklyGoal = 10
)

const (
	MimeVideo = "video/"
	MimeImage = "image/"
)

var (
	AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
)
