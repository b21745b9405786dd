// Package validation implements the declarative field-validation engine used by
// every entity service. A rule set is a plain slice of Rule values evaluated
// against request documents (query params or JSON body items); failures are
// reported structurally, never as errors or panics, so callers decide how to
// surface them.
package validation

import "fmt"

// Rule describes a single field check. Check must be a pure function; it is
// never invoked when the field is absent from the document.
type Rule struct {
	Field    string
	Required bool
	Check    func(value any) bool
	Message  string
}

// ItemErrors collects the failure messages for one document, addressed by its
// position in the validated collection.
type ItemErrors struct {
	Index    int      `json:"index"`
	Messages []string `json:"messages"`
}

// Validate evaluates every rule against every document, in rule order.
// Presence is a key-existence check: a value of false, 0 or "" is present.
// Documents with no failures contribute nothing, so the result is empty for a
// fully valid input and never longer than the input.
func Validate(items []map[string]any, rules []Rule) []ItemErrors {
	var results []ItemErrors

	for i, item := range items {
		var messages []string
		for _, rule := range rules {
			value, present := item[rule.Field]
			if !present {
				if rule.Required {
					messages = append(messages, fmt.Sprintf("Field %q is required.", rule.Field))
				}
				continue
			}
			if rule.Check != nil && !rule.Check(value) {
				messages = append(messages, fmt.Sprintf("Field %q: %s", rule.Field, rule.Message))
			}
		}
		if len(messages) > 0 {
			results = append(results, ItemErrors{Index: i, Messages: messages})
		}
	}

	return results
}

// ValidateOne validates a single document as a one-element collection.
func ValidateOne(item map[string]any, rules []Rule) []ItemErrors {
	return Validate([]map[string]any{item}, rules)
}
