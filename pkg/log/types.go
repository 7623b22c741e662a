package log

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string
	Mode         string // "production" or "debug"
	Encoding     string // "json" or "console"
	ColorEnabled bool
}

type ctxKey string

// RequestIDKey is the context key the request-id middleware stores its value under.
const RequestIDKey ctxKey = "request_id"

const (
	ModeProduction = "production"
	EncodingJSON   = "json"
)
