package authsession

// User is the signed-in account. ID is its identity.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// State is an immutable snapshot of the session.
type State struct {
	Token     string
	User      *User
	IsLoading bool
}

// IsAuthenticated reports whether a token is held.
func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

// CurrentUser returns the signed-in user, if any.
func (s State) CurrentUser() (User, bool) {
	if s.User == nil {
		return User{}, false
	}
	return *s.User, true
}
