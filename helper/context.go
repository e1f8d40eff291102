package helper

// Keys under which middleware stores request state in the gin context.
const (
	RequestIDKey = "request_id"
	IdentityKey  = "identity"
)

// RequestIDHeader is read from and echoed on every response.
const RequestIDHeader = "X-Request-ID"
