package domain

import "strings"

// ServiceMethod is the canonical way service was (or was not) effected.
type ServiceMethod string

const (
	MethodPersonal     ServiceMethod = "personal"
	MethodResidence    ServiceMethod = "residence"
	MethodOrganization ServiceMethod = "organization"
	MethodUnexecuted   ServiceMethod = "unexecuted"
	MethodOther        ServiceMethod = "other"
)

// ServiceMethodValues lists every canonical method.
func ServiceMethodValues() []string {
	return []string{
		string(MethodPersonal), string(MethodResidence), string(MethodOrganization),
		string(MethodUnexecuted), string(MethodOther),
	}
}

// IsKnownServiceMethod reports whether m is one of the canonical methods.
func IsKnownServiceMethod(m ServiceMethod) bool {
	switch m {
	case MethodPersonal, MethodResidence, MethodOrganization, MethodUnexecuted, MethodOther:
		return true
	}
	return false
}

// methodRules are checked in order; the first rule with a matching keyword wins.
var methodRules = []struct {
	keywords []string
	method   ServiceMethod
}{
	{[]string{"personal"}, MethodPersonal},
	{[]string{"substitute", "residence"}, MethodResidence},
	{[]string{"corporate", "organization"}, MethodOrganization},
	{[]string{"unexecuted", "unsuccessful"}, MethodUnexecuted},
}

// ClassifyDetail maps free-text service detail onto a canonical method.
func ClassifyDetail(detail string) ServiceMethod {
	lowered := strings.ToLower(detail)
	for _, rule := range methodRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.method
			}
		}
	}
	return MethodOther
}

// Classify derives the method from an attempt's free text. Without an
// attempt the outcome decides: unexecuted for not served, personal otherwise.
func Classify(attempt *Attempt, outcome Outcome) ServiceMethod {
	if attempt == nil {
		if outcome == OutcomeNotServed {
			return MethodUnexecuted
		}
		return MethodPersonal
	}
	return ClassifyDetail(attempt.ServiceTypeDetail)
}

// MethodFor prefers the method tagged at logging time and falls back to Classify.
func MethodFor(attempt *Attempt, outcome Outcome) ServiceMethod {
	if attempt != nil && IsKnownServiceMethod(attempt.ServiceMethod) {
		return attempt.ServiceMethod
	}
	return Classify(attempt, outcome)
}

// InferMethod tags an attempt logged without an explicit method. The tag is
// what Classify would derive from the attempt on read, so tagging never
// changes how an attempt renders. Attempts with no detail text are other.
func InferMethod(a Attempt) ServiceMethod {
	return Classify(&a, "")
}
