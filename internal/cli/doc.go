// Package cli implements the social command: a terminal front end that
// drives authsession the way the mobile screens do.
//
//	social [-env-file FILE] [-v] <command> [flags]
//
//	status                               show the restored session, check the store
//	login  -email E [-password P]        sign in
//	signup -email E [-password P] [-confirm P]
//	logout                               clear the session
//
// Every run restores the persisted session before the command executes and
// prints the route a navigation guard would take ("/home" when signed in,
// "/" otherwise) whenever it changes. Passwords not given as flags are read
// from stdin, one per line.
//
// Settings come from SOCIAL_* environment variables (see Config).
package cli
