package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"serveportal_backend/platform/logger"
)

type testGeocodeConfig struct{ url string }

func (c testGeocodeConfig) GetNominatimURL() string        { return c.url }
func (c testGeocodeConfig) GetGeocodeCountryCodes() string { return "us" }
func (c testGeocodeConfig) GetGeocodeUserAgent() string    { return "ServePortalTest/1.0" }

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(testGeocodeConfig{url: srv.URL + "/"}, logger.New("test"))
}

func TestSearchAddressNormalizesUSAddresses(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("countrycodes") != "us" {
			t.Errorf("expected country filter, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "ServePortalTest/1.0" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`[
			{"lat":"39.80","lon":"-89.65","address":{"road":"Main Street","house_number":"200","city":"Springfield","county":"Sangamon County","state":"Illinois","ISO3166-2-lvl4":"US-IL","postcode":"62701"}},
			{"lat":"0","lon":"0","address":{"city":"Nowhere"}}
		]`))
	})

	got, err := svc.SearchAddress(context.Background(), "200 main st springfield")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	want := AddressSuggestion{
		Label:  "200 Main Street, Springfield, IL 62701",
		Street: "200 Main Street",
		City:   "Springfield",
		State:  "IL",
		ZIP:    "62701",
		County: "Sangamon County",
		Lat:    "39.80",
		Lon:    "-89.65",
	}
	if got[0] != want {
		t.Fatalf("got %+v, want %+v", got[0], want)
	}
}

func TestReverseGeocodeReturnsOneLineAddress(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" || r.URL.Query().Get("lat") != "39.801700" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"lat":"39.8017","lon":"-89.6437","address":{"road":"Adams Street","town":"Springfield","state":"Illinois","postcode":"62701"}}`))
	})

	got, err := svc.ReverseGeocode(context.Background(), 39.8017, -89.6437)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if got != "Adams Street, Springfield, Illinois 62701" {
		t.Fatalf("unexpected address %q", got)
	}
}

func TestReverseWithoutAddress(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	})

	_, err := svc.Reverse(context.Background(), 0, 0)
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestUpstreamErrorIsReported(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := svc.SearchAddress(context.Background(), "main street"); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestBuildLabelWithoutStateOrZIP(t *testing.T) {
	got := buildLabel(AddressSuggestion{Street: "1 Elm St", City: "Peoria"})
	if got != "1 Elm St, Peoria" {
		t.Fatalf("unexpected label %q", got)
	}
}
