package common

// AuthorizationHeaderName is the HTTP header that carries the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed on every response.
const RequestIDHeaderName = "X-Request-Id"
