package constants

// Gin context keys set by the auth middleware.
const (
	CtxKeyPrincipal = "principal"
	CtxKeyUserID    = "user_id"
)
