// Package common contains shared constants and small helpers used across
// AgroScan client components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prefixes the token value in the authorization header.
const BearerPrefix = "Bearer "

// SaveStatusSaved is the save-status flag the classification service
// returns when a scan was durably persisted on the server.
const SaveStatusSaved = "SAVED_SUCCESS"
