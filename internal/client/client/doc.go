// Package client talks to the account service on behalf of the CLI.
//
// HTTPClient calls the JSON API (register, login, whoMI) and HealthClient
// asks the gRPC health service whether the server is serving. Failures are
// reported through the sentinel errors ErrUnavailable, ErrUnauthorized and
// ErrNotFound, or as an *APIError carrying the server's message.
package client
