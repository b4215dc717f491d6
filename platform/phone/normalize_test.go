package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(312) 555-0142", "+13125550142"},
		{"+44 20 7946 0958", "+442079460958"},
		{"not a number", "not a number"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeE164(tt.in); got != tt.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayUsesNationalFormatForUS(t *testing.T) {
	if got := Display("+13125550142"); got != "(312) 555-0142" {
		t.Fatalf("unexpected display format %q", got)
	}
}
