package domain

// AuthMethod describes how a caller authenticated with the API.
type AuthMethod string

const (
	AuthMethodJWT     AuthMethod = "jwt"
	AuthMethodGateway AuthMethod = "gateway"
)

// Principal captures normalized caller identity independent of auth mechanism.
// ID is the stable identity every chat operation is keyed by.
type Principal struct {
	ID         string
	AuthMethod AuthMethod
	Subject    string
	Issuer     string
	Email      string
	Name       string
	Picture    string
}

// Authenticated reports whether the principal carries a usable identity.
func (p Principal) Authenticated() bool {
	return p.ID != ""
}
