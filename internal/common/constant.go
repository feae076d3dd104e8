// Package common contains constants and helpers shared by the client
// packages.
package common

const (
	// SessionStorageKey names the single persisted session record.
	SessionStorageKey = "auth-storage"

	// DeviceIDKey names the metadata entry holding the generated device id.
	DeviceIDKey = "device-id"

	// AuthorizationHeaderName carries the session token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationScheme prefixes the token in AuthorizationHeaderName.
	AuthorizationScheme = "bearer"
)
