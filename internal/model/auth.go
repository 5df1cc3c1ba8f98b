package model

// Login is the credential pair accepted by POST /users/login.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authentication is the envelope returned on a successful login. Token is
// an opaque signed string; Expiration is the absolute deadline in epoch
// milliseconds after which the token stops verifying. There is no
// server-side session behind it.
type Authentication struct {
	Token      string `json:"token"`
	Expiration int64  `json:"expiration"`
}
