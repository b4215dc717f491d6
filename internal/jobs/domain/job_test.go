package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateAddresses(t *testing.T) {
	cases := []struct {
		name      string
		addresses []Address
		want      error
	}{
		{"none", nil, ErrNoAddress},
		{"no primary", []Address{{Street: "1 Main"}}, ErrNoPrimaryAddress},
		{"two primaries", []Address{{Primary: true}, {Primary: true}}, ErrNoPrimaryAddress},
		{"one primary", []Address{{Primary: true}, {}}, nil},
	}
	for _, tc := range cases {
		if err := ValidateAddresses(tc.addresses); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAddressOneLine(t *testing.T) {
	a := Address{Street: "221 W Main St", Street2: "Apt 4", City: "Springfield", State: "IL", ZIP: "62701"}
	if got := a.OneLine(); got != "221 W Main St Apt 4, Springfield, IL 62701" {
		t.Fatalf("unexpected address line %q", got)
	}
	if got := (Address{City: "Chicago"}).OneLine(); got != "Chicago" {
		t.Fatalf("unexpected partial address line %q", got)
	}
}

func TestServedTitles(t *testing.T) {
	docs := []Document{
		{Title: "Summons", Category: DocumentToBeServed},
		{Title: "Prior affidavit", Category: DocumentAffidavit},
		{Title: "Complaint", Category: DocumentToBeServed},
		{Title: "  ", Category: DocumentToBeServed},
	}
	want := []string{"Summons", "Complaint"}
	if got := ServedTitles(docs); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOutcomeFor(t *testing.T) {
	if OutcomeFor(StatusServed) != OutcomeServed {
		t.Fatal("served job must map to served outcome")
	}
	for _, s := range []JobStatus{StatusPending, StatusUnableToServe, StatusCancelled} {
		if OutcomeFor(s) != OutcomeNotServed {
			t.Fatalf("%s must map to not_served", s)
		}
	}
}
