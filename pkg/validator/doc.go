// Package validator provides small declarative rules for checking user input
// before it is sent anywhere.
//
// A Rule pairs a Check func with the ValidationError reported when the check
// fails. Apply evaluates rules in order and returns every failure as a
// ValidationErrors value, which implements error.
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.MinLenString("password", password, 6),
//	    validator.EqualString("confirm", confirm, password),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() { ... }
//	}
//
// Rules are pure and hold no global state, so they are safe to build and
// apply from any goroutine.
package validator
