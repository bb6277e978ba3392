package common

// AuthorizationHeaderName carries the bearer credential on admin requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the exact, case-sensitive prefix of a bearer credential.
const BearerPrefix = "Bearer "

// RequestIDHeaderName echoes the per-request id assigned by the server.
const RequestIDHeaderName = "X-Request-ID"
