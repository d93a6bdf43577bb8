package validation

import (
	"fmt"

	"chart-color-inspector/internal/classifier"
)

// RuleIssue represents a rule validation issue.
type RuleIssue struct {
	Rule      string `json:"rule"`
	Condition string `json:"condition,omitempty"`
	Message   string `json:"message"`
	Severity  string `json:"severity"` // "error", "warning"
}

// RuleValidator checks that color rules (built-in or loaded from a rules
// file) are well formed before they reach the classifier.
type RuleValidator struct{}

// NewRuleValidator creates a new rule validator.
func NewRuleValidator() *RuleValidator {
	return &RuleValidator{}
}

// ValidateRule returns all issues found in a single rule. An empty slice
// means the rule is usable.
func (v *RuleValidator) ValidateRule(rule classifier.ColorRule) []RuleIssue {
	var issues []RuleIssue

	if rule.Name == "" {
		issues = append(issues, RuleIssue{
			Rule:     rule.Name,
			Message:  "rule has no name",
			Severity: "error",
		})
	}
	if len(rule.Conditions) == 0 {
		issues = append(issues, RuleIssue{
			Rule:     rule.Name,
			Message:  "rule has no conditions; it would match every pixel",
			Severity: "error",
		})
	}

	for _, cond := range rule.Conditions {
		issues = append(issues, v.validateCondition(rule.Name, cond, 0)...)
	}
	return issues
}

// ValidateRules validates a whole rule set, also flagging duplicate names.
func (v *RuleValidator) ValidateRules(rules []classifier.ColorRule) []RuleIssue {
	var issues []RuleIssue
	seen := make(map[string]bool)
	for _, rule := range rules {
		if seen[rule.Name] {
			issues = append(issues, RuleIssue{
				Rule:     rule.Name,
				Message:  "duplicate rule name",
				Severity: "error",
			})
		}
		seen[rule.Name] = true
		issues = append(issues, v.ValidateRule(rule)...)
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []RuleIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}

// IssueMessages converts issues to printable messages.
func IssueMessages(issues []RuleIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Condition != "" {
			messages = append(messages, fmt.Sprintf("%s/%s: %s", issue.Rule, issue.Condition, issue.Message))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s: %s", issue.Rule, issue.Message))
	}
	return messages
}

const maxAnyOfDepth = 2

func (v *RuleValidator) validateCondition(ruleName string, cond classifier.Condition, depth int) []RuleIssue {
	var issues []RuleIssue

	if len(cond.AnyOf) > 0 {
		if depth >= maxAnyOfDepth {
			issues = append(issues, RuleIssue{
				Rule:      ruleName,
				Condition: cond.Name,
				Message:   "any_of groups nested too deep",
				Severity:  "error",
			})
			return issues
		}
		for _, group := range cond.AnyOf {
			if len(group) == 0 {
				issues = append(issues, RuleIssue{
					Rule:      ruleName,
					Condition: cond.Name,
					Message:   "empty any_of group; it would match every pixel",
					Severity:  "error",
				})
			}
			for _, sub := range group {
				issues = append(issues, v.validateCondition(ruleName, sub, depth+1)...)
			}
		}
		return issues
	}

	if cond.Scale < 0 {
		issues = append(issues, RuleIssue{
			Rule:      ruleName,
			Condition: cond.Name,
			Message:   fmt.Sprintf("negative scale %g", cond.Scale),
			Severity:  "error",
		})
	}
	// A constant threshold outside the channel range can never flip the
	// comparison one way or the other.
	if cond.Right == classifier.TermZero && (cond.Offset < 0 || cond.Offset > 255) {
		issues = append(issues, RuleIssue{
			Rule:      ruleName,
			Condition: cond.Name,
			Message:   fmt.Sprintf("threshold %g outside the 0-255 channel range", cond.Offset),
			Severity:  "warning",
		})
	}
	return issues
}
