package constants

// Static route constants
const (
	PublicRoute  = "/"
	UploadsRoute = "/uploads"
	LoginRoute   = "/login"
	// Upload path without leading slash for URL construction
	UploadsPath = "uploads"
)
