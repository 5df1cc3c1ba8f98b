package model

// RedactedPassword replaces the stored bcrypt hash on every record that
// leaves the service. The placeholder is also what ends up inside issued
// tokens, so a decoded token never exposes a usable hash.
const RedactedPassword = "<<Protected>>"

// Well-known role names. Both are seeded at startup when the roles
// collection is empty.
const (
	RoleAdministrator = "Administrator"
	RoleGuest         = "Guest"
)

// Role is an immutable named role. The ID is an opaque identifier
// generated once when the role is first persisted; Name is the unique
// human-facing value carried inside tokens and authorization checks.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an account record as stored in the `users` hash collection.
// Email is the business key: the store is keyed by it and it doubles as
// the subject identifier on the HTTP API. Password holds the bcrypt hash
// at rest and the plaintext only transiently on inbound create/update
// bodies; read paths always substitute RedactedPassword.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Roles    []Role `json:"roles"`
}

// Redacted returns a copy of the user with the password replaced by the
// redaction placeholder. The stored record is never mutated.
func (u User) Redacted() User {
	u.Password = RedactedPassword
	return u
}

// HasRole reports whether the user carries a role with the given name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles in declaration order.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
