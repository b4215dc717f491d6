package pdf

import (
	"bytes"
	"regexp"
	"testing"
)

var codePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)

func TestNewVerificationCode(t *testing.T) {
	a, err := NewVerificationCode()
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	b, _ := NewVerificationCode()
	if !codePattern.MatchString(a) {
		t.Fatalf("unexpected code format %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct codes")
	}
}

func TestVerificationURL(t *testing.T) {
	if got := VerificationURL("https://app.example.com/", "ABCD-EFGH-JKLM"); got != "https://app.example.com/verify/ABCD-EFGH-JKLM" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestVerificationQRIsPNG(t *testing.T) {
	png, err := VerificationQR("https://app.example.com/verify/ABCD", 0)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected png output")
	}
}
