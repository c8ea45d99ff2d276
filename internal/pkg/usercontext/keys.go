package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey        = "authenticated"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyIsStaff     = "is_staff"
	KeyUserContext = "USER_CONTEXT"
)
