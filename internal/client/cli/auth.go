package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/carelink/hospital-system/pkg/client"
	"github.com/carelink/hospital-system/pkg/passcheck"
)

// Register prompts for credentials and signs up. The strength gate and
// confirmation check run locally before any request; a rejection here never
// counts toward the login lockout.
func (a *App) Register() error {
	email, err := GetSimpleText(a.reader, "Email address", a.out)
	if err != nil {
		return err
	}
	if !validEmail(email) {
		fmt.Fprintln(a.out, "Please enter a valid email address")
		return nil
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	strength := passcheck.Evaluate(password)
	fmt.Fprintf(a.out, "Password strength: %s (%d%%)\n", strength.Level, strength.Percent)
	if !strength.MeetsSignupBar() {
		for _, r := range passcheck.Rules {
			if !r.Test(password) {
				fmt.Fprintf(a.out, "  missing: %s\n", r.Label)
			}
		}
		fmt.Fprintln(a.out, "Please use a stronger password")
		return nil
	}

	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	if confirm != password {
		fmt.Fprintln(a.out, "Passwords do not match")
		return nil
	}

	result, err := a.api.Signup(context.Background(), email, password)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case client.OutcomeSuccess:
		fmt.Fprintln(a.out, result.Message)
	case client.OutcomeConflict:
		fmt.Fprintln(a.out, "That email is already registered; try logging in")
	default:
		fmt.Fprintln(a.out, result.Message)
	}
	return nil
}

// Login authenticates. While the local lockout is active the attempt is
// refused with remaining-seconds feedback and no request is made.
func (a *App) Login() error {
	if ok, remaining := a.api.Throttle().Allow(); !ok {
		fmt.Fprintf(a.out, "Too many attempts. Try again in %ds\n", int(math.Ceil(remaining.Seconds())))
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email address", a.out)
	if err != nil {
		return err
	}
	if !validEmail(email) {
		fmt.Fprintln(a.out, "Please enter a valid email address")
		return nil
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	result, err := a.api.Login(context.Background(), email, password)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case client.OutcomeSuccess:
		fmt.Fprintln(a.out, "Login successful")
	case client.OutcomeLockedOut:
		fmt.Fprintf(a.out, "Account locked for %ds due to failed attempts\n", int(math.Ceil(result.Retry.Seconds())))
	case client.OutcomeInvalidCredentials, client.OutcomeValidationError:
		if ok, remaining := a.api.Throttle().Allow(); !ok {
			fmt.Fprintf(a.out, "%s. Account locked for %ds\n", result.Message, int(math.Ceil(remaining.Seconds())))
		} else {
			left := maxFailedAttemptsHint - a.api.Throttle().FailedAttempts()
			fmt.Fprintf(a.out, "%s (%d attempts left)\n", result.Message, left)
		}
	case client.OutcomeThrottled:
		fmt.Fprintln(a.out, result.Message)
	default:
		fmt.Fprintln(a.out, "Something went wrong, please try again")
	}
	return nil
}

// maxFailedAttemptsHint mirrors the throttle's threshold for the
// "attempts left" hint.
const maxFailedAttemptsHint = 5
