package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	ContextKeyTodo      = "todo"
	ContextKeyPlaylist  = "playlist"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	TokenIssuer       = "daybook"
	RequestIDHeader   = "X-Request-ID"
	StreamTokenQuery  = "token"
)

// Songs
const (
	DefaultSongSampleSize = 10
	MaxSongSampleSize     = 50
	TrendingWindowDays    = 7
	TopPreferenceCount    = 3
)

// Tags
const (
	MaxTagSuggestions = 10
	MaxTagLength      = 50
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second
