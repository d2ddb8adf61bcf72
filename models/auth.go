package models

// AuthInfo carries the credentials the transport needs to reach the remote
// service. The engine never inspects either field; it only hands them to the
// adapter, which attaches the token to outgoing requests.
type AuthInfo struct {
	// Token is the bearer token for the storage endpoint.
	Token string

	// KeyBundle is opaque key material owned by the wire-encryption layer,
	// which lives outside this engine.
	KeyBundle []byte
}
