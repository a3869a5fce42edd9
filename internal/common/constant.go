package common

// AuthorizationHeader is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a client-generated request ID for log correlation.
const RequestIDHeader = "X-Request-ID"

// EmailDomain is the only email domain the platform accepts.
const EmailDomain = "@gmu.edu"

// MinPasswordLength is the minimum signup password length enforced
// client-side (the server enforces the same rule).
const MinPasswordLength = 12
