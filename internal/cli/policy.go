package cli

import (
	"fmt"

	"github.com/SaadSolutions/social/pkg/validator"
)

// emailPolicy only requires an address; the server judges its format.
func emailPolicy(email string) error {
	return validator.Apply(
		withMessage(validator.RequiredString("email", email), "Email is required"),
	)
}

// signupPolicy mirrors the signup screen: confirmation first, then length.
// Only the first failure is reported.
func signupPolicy(password, confirm string, minLen int) error {
	rules := []validator.Rule{
		withMessage(validator.EqualString("confirm", confirm, password),
			"Passwords do not match"),
		withMessage(validator.MinLenString("password", password, minLen),
			fmt.Sprintf("Password must be at least %d characters long", minLen)),
	}

	for _, rule := range rules {
		if err := validator.Apply(rule); err != nil {
			return err
		}
	}
	return nil
}

func withMessage(rule validator.Rule, msg string) validator.Rule {
	rule.Error.Message = msg
	return rule
}

// policyMessage returns the user-facing text of a policy failure.
func policyMessage(err error) string {
	if first, ok := validator.ExtractValidationErrors(err).First(); ok {
		return first.Message
	}
	return err.Error()
}
