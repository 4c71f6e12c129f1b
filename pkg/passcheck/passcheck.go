// Package passcheck scores candidate passwords against a fixed rule set.
// It gates signup submission in the terminal client; login is never gated.
package passcheck

import "strings"

// symbols is the punctuation set counted by the symbol rule.
const symbols = `!@#$%^&*(),.?":{}|<>`

// Level is a named strength band.
type Level string

const (
	Weak      Level = "weak"
	Fair      Level = "fair"
	Good      Level = "good"
	Strong    Level = "strong"
	Excellent Level = "excellent"
)

// SignupThreshold is the minimum percent required to submit a signup.
const SignupThreshold = 60

// Strength is the evaluation result: how many rules passed and the band the
// count maps to.
type Strength struct {
	Score   int // rules satisfied, 0..5
	Percent int // 20, 40, 60, 80, 100
	Level   Level
}

// MeetsSignupBar reports whether the password clears the signup gate.
func (s Strength) MeetsSignupBar() bool {
	return s.Percent >= SignupThreshold
}

// Rule is one independent boolean check with a human-readable label.
type Rule struct {
	Label string
	Test  func(string) bool
}

// Rules are the five checks, each worth one point.
var Rules = []Rule{
	{"At least 8 characters", func(p string) bool { return len(p) >= 8 }},
	{"One uppercase letter", containsAny("ABCDEFGHIJKLMNOPQRSTUVWXYZ")},
	{"One lowercase letter", containsAny("abcdefghijklmnopqrstuvwxyz")},
	{"One number", containsAny("0123456789")},
	{"One special character", containsAny(symbols)},
}

// Evaluate scores password against Rules. A score of 0 or 1 is Weak; each
// additional rule moves one band up to Excellent at 5.
func Evaluate(password string) Strength {
	score := 0
	for _, r := range Rules {
		if r.Test(password) {
			score++
		}
	}

	switch {
	case score <= 1:
		return Strength{Score: score, Percent: 20, Level: Weak}
	case score == 2:
		return Strength{Score: score, Percent: 40, Level: Fair}
	case score == 3:
		return Strength{Score: score, Percent: 60, Level: Good}
	case score == 4:
		return Strength{Score: score, Percent: 80, Level: Strong}
	default:
		return Strength{Score: score, Percent: 100, Level: Excellent}
	}
}

func containsAny(set string) func(string) bool {
	return func(p string) bool { return strings.ContainsAny(p, set) }
}
