package models

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	errs := FieldErrors{}
	if c.Username == "" {
		errs["username"] = "Username is required"
	}
	if c.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs.err()
}

// TokenPair is returned by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
