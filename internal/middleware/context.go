package middleware

// Context keys used to store request and session metadata.
const (
	ContextKeySession   = "session"
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
