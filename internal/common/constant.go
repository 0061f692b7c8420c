package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// HealthServiceName is the gRPC health-check service name of the account API.
const HealthServiceName = "patientauth.Auth"
