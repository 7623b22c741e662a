package middleware

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"
