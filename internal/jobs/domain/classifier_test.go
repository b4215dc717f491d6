package domain

import "testing"

func TestClassifyDetail(t *testing.T) {
	cases := []struct {
		detail string
		want   ServiceMethod
	}{
		{"Personal or substitute service", MethodPersonal},
		{"PERSONAL SERVICE", MethodPersonal},
		{"Substitute service - co-resident", MethodResidence},
		{"Left at residence with adult", MethodResidence},
		{"Corporate service on registered agent", MethodOrganization},
		{"Served organization manager", MethodOrganization},
		{"Unsuccessful - no answer", MethodUnexecuted},
		{"Returned unexecuted", MethodUnexecuted},
		{"Posted on door", MethodOther},
		{"", MethodOther},
	}
	for _, tc := range cases {
		if got := ClassifyDetail(tc.detail); got != tc.want {
			t.Fatalf("ClassifyDetail(%q) = %s, want %s", tc.detail, got, tc.want)
		}
	}
}

func TestClassifyWithoutAttempt(t *testing.T) {
	if got := Classify(nil, OutcomeNotServed); got != MethodUnexecuted {
		t.Fatalf("expected unexecuted for not served, got %s", got)
	}
	if got := Classify(nil, OutcomeServed); got != MethodPersonal {
		t.Fatalf("expected personal default, got %s", got)
	}
}

func TestMethodForPrefersTag(t *testing.T) {
	a := Attempt{ServiceTypeDetail: "personal", ServiceMethod: MethodOrganization}
	if got := MethodFor(&a, OutcomeServed); got != MethodOrganization {
		t.Fatalf("expected tagged method, got %s", got)
	}
	a.ServiceMethod = "bogus"
	if got := MethodFor(&a, OutcomeServed); got != MethodPersonal {
		t.Fatalf("expected classifier fallback for unknown tag, got %s", got)
	}
}

func TestInferMethod(t *testing.T) {
	cases := []struct {
		attempt Attempt
		want    ServiceMethod
	}{
		{Attempt{Status: AttemptServed}, MethodOther},
		{Attempt{Status: AttemptNoAnswer}, MethodOther},
		{Attempt{Status: AttemptServed, ServiceTypeDetail: "corporate - registered agent"}, MethodOrganization},
		{Attempt{Status: AttemptNoAnswer, ServiceTypeDetail: "gate locked"}, MethodOther},
	}
	for _, tc := range cases {
		if got := InferMethod(tc.attempt); got != tc.want {
			t.Fatalf("InferMethod(%+v) = %s, want %s", tc.attempt, got, tc.want)
		}
	}
}

func TestInferMethodMatchesClassifyOnRead(t *testing.T) {
	details := []string{"", "  ", "Personal or substitute service", "left with resident", "unsuccessful - moved", "gate locked"}
	for _, detail := range details {
		for _, status := range []AttemptStatus{AttemptServed, AttemptNoAnswer} {
			untagged := Attempt{Status: status, ServiceTypeDetail: detail}
			tagged := untagged
			tagged.ServiceMethod = InferMethod(untagged)
			for _, outcome := range []Outcome{OutcomeServed, OutcomeNotServed} {
				if got, want := MethodFor(&tagged, outcome), MethodFor(&untagged, outcome); got != want {
					t.Fatalf("detail %q status %s: tagged reads %s, untagged reads %s", detail, status, got, want)
				}
			}
		}
	}
}
