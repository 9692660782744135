package domain

// Identity is the authenticated caller of the current request. It is resolved
// from the store by the authorization gate and handed to services explicitly;
// nothing in the codebase reads authentication state from ambient globals.
type Identity struct {
	UserID   int64
	Username string
	Name     string
	Roles    []string
}
