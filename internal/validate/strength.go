package validate

import "regexp"

// Strength is the 0-6 password strength tier.
type Strength struct {
	Score int
	Label string
}

var (
	lowerRe  = regexp.MustCompile(`[a-z]`)
	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[@$!%*?&]`)
)

var strengthLabels = map[int]string{
	0: "Very Weak",
	1: "Very Weak",
	2: "Weak",
	3: "Fair",
	4: "Good",
	5: "Strong",
	6: "Very Strong",
}

// PasswordStrength scores a password by six independent checks: two length
// thresholds and four character classes. The score is monotonic in the checks
// satisfied.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Label: ""}
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if lowerRe.MatchString(password) {
		score++
	}
	if upperRe.MatchString(password) {
		score++
	}
	if digitRe.MatchString(password) {
		score++
	}
	if symbolRe.MatchString(password) {
		score++
	}

	return Strength{Score: score, Label: strengthLabels[score]}
}
