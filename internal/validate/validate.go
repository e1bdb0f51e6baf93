package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules configures validation for a single form field.
type Rules struct {
	Required  bool
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
	// Match names another field whose live value this field must equal
	// (confirm-password). Resolved at validation time, not at rule-set
	// construction.
	Match   string
	Message string
}

type RuleSet map[string]Rules

// Result aggregates per-field violations. Valid iff no field has any.
type Result struct {
	Valid  bool
	Errors map[string][]string
}

// Field validates a single value. matchValue is the current value of the field
// named by Rules.Match; it is ignored when Match is empty. Violations come back
// in rule order, and an empty required field short-circuits to exactly one
// violation.
func Field(value string, rules Rules, matchValue string) []string {
	var violations []string

	empty := strings.TrimSpace(value) == ""
	if rules.Required && empty {
		if rules.Message != "" {
			return []string{rules.Message}
		}
		return []string{"This field is required"}
	}
	if empty {
		return nil
	}

	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		if rules.Message != "" {
			violations = append(violations, rules.Message)
		} else {
			violations = append(violations, "Invalid format")
		}
	}

	if rules.MinLength > 0 && len(value) < rules.MinLength {
		violations = append(violations, fmt.Sprintf("Must be at least %d characters", rules.MinLength))
	}
	if rules.MaxLength > 0 && len(value) > rules.MaxLength {
		violations = append(violations, fmt.Sprintf("Must be no more than %d characters", rules.MaxLength))
	}

	if rules.Match != "" && value != matchValue {
		if rules.Message != "" {
			violations = append(violations, rules.Message)
		} else {
			violations = append(violations, "Values do not match")
		}
	}

	return violations
}

// Form validates every field in the rule set against data. Match rules read the
// referenced field's value from data at call time, so re-validating after either
// side of a pair changes always sees the latest values.
func Form(data map[string]string, ruleSet RuleSet) Result {
	result := Result{Valid: true, Errors: make(map[string][]string)}

	for field, rules := range ruleSet {
		matchValue := ""
		if rules.Match != "" {
			matchValue = data[rules.Match]
		}
		if violations := Field(data[field], rules, matchValue); len(violations) > 0 {
			result.Errors[field] = violations
			result.Valid = false
		}
	}

	return result
}

// SignupRules is the rule table used by signup and login prompts.
var SignupRules = RuleSet{
	"email": {
		Required:  true,
		Pattern:   regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		MinLength: 5,
		MaxLength: 100,
		Message:   "Please enter a valid email address",
	},
	"password": {
		Required:  true,
		MinLength: 8,
		MaxLength: 50,
		// RE2 has no lookahead; "letter and digit in either order" spelled out.
		Pattern: regexp.MustCompile(`^(.*[a-zA-Z].*\d.*|.*\d.*[a-zA-Z].*)$`),
		Message:   "Password must be at least 8 characters with at least one letter and one number",
	},
	"name": {
		Required:  true,
		MinLength: 2,
		MaxLength: 50,
		Pattern:   regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`),
		Message:   "Name must be 2-50 characters, letters, spaces, hyphens, apostrophes, and periods only",
	},
	"confirmPassword": {
		Required: true,
		Match:    "password",
		Message:  "Passwords do not match",
	},
}

// LoginRules covers the login prompt.
var LoginRules = RuleSet{
	"email":    SignupRules["email"],
	"password": {Required: true, Message: "Password is required"},
}
