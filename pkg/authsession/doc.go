// Package authsession owns the client-side authentication session: the
// current bearer token, the signed-in user, and whether an auth call is in
// flight.
//
// A Manager is the only writer of that state. It restores a persisted session
// at startup, performs login and signup against the backend, and clears the
// session on logout. Successful authentication is committed in one step
// under the manager lock: the in-memory state is set, the token and user
// record are written to the durable store as a pair, and the API client's
// Authorization header is set to "Bearer <token>".
//
//	store, _ := kvstore.NewFileStore(kvstore.DefaultPath())
//	api, _ := apiclient.New("http://localhost:3000")
//	m := authsession.New(store, api, authsession.WithLogger(log))
//	m.Restore(ctx)
//
//	if err := m.Login(ctx, email, password); err != nil {
//	    var authErr *authsession.AuthError
//	    if errors.As(err, &authErr) {
//	        fmt.Println(authErr.Message)
//	    }
//	}
//
// # Persistence
//
// The session is stored under two keys: TokenKey holds the raw token and
// UserKey holds the user record as {"id":<number>,"email":<string>}. Restore
// accepts the pair only when both keys are present and the record decodes;
// any other partial or malformed pair is deleted. Store failures are logged
// and never returned to callers.
//
// # Errors
//
// Login and Signup return *AuthError. Its Message is safe to show to a
// user; the underlying cause is available through errors.Unwrap for logging.
// errors.Is(err, ErrRejected) matches a server refusal and
// errors.Is(err, ErrTransport) matches a request that got no usable answer.
//
// # Observing
//
// Subscribe returns a stream of State snapshots, one per change. A slow
// subscriber skips intermediate snapshots but always receives the latest.
//
// Operations may be called from several goroutines. Network calls run
// outside the lock, so overlapping logins settle last-writer-wins.
package authsession
