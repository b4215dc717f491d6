// Package maps looks up US addresses through a Nominatim instance: forward
// search for address forms and reverse geocoding of attempt GPS fixes.
package maps

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"serveportal_backend/platform/config"
	"serveportal_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "ServePortal/1.0"
)

// ErrNoAddress is returned when a GPS fix does not resolve to a street address.
var ErrNoAddress = errors.New("no address at location")

type Service struct {
	client       *http.Client
	baseURL      string
	countryCodes string
	userAgent    string
	limiter      *rate.Limiter
	log          *logger.Logger
}

func NewService(cfg config.GeocodeConfig, log *logger.Logger) *Service {
	s := &Service{
		client:       &http.Client{Timeout: 5 * time.Second},
		baseURL:      defaultNominatimURL,
		countryCodes: "us",
		userAgent:    defaultUserAgent,
		// public Nominatim allows one request per second
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     log,
	}
	if cfg != nil {
		if v := strings.TrimRight(strings.TrimSpace(cfg.GetNominatimURL()), "/"); v != "" {
			s.baseURL = v
		}
		if v := strings.TrimSpace(cfg.GetGeocodeCountryCodes()); v != "" {
			s.countryCodes = v
		}
		if v := strings.TrimSpace(cfg.GetGeocodeUserAgent()); v != "" {
			s.userAgent = v
		}
	}
	return s
}

func (s *Service) SearchAddress(ctx context.Context, query string) ([]AddressSuggestion, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", "5")
	if s.countryCodes != "" {
		params.Add("countrycodes", s.countryCodes)
	}

	var rawResults []nominatimPlace
	if err := s.get(ctx, "/search", params, &rawResults); err != nil {
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// Reverse resolves a GPS fix to the nearest street address.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) (AddressSuggestion, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Add("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("zoom", "18")

	var raw nominatimPlace
	if err := s.get(ctx, "/reverse", params, &raw); err != nil {
		return AddressSuggestion{}, err
	}
	if raw.Error != "" {
		return AddressSuggestion{}, ErrNoAddress
	}

	suggestion, ok := buildSuggestion(raw)
	if !ok {
		return AddressSuggestion{}, ErrNoAddress
	}
	return suggestion, nil
}

// ReverseGeocode returns the one-line address printed on attempts.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	suggestion, err := s.Reverse(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	return suggestion.Label, nil
}

func (s *Service) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return err
	}
	return nil
}

func buildSuggestion(raw nominatimPlace) (AddressSuggestion, bool) {
	if raw.Address.Road == "" {
		return AddressSuggestion{}, false
	}

	city := pickCity(raw)
	if city == "" {
		return AddressSuggestion{}, false
	}

	street := raw.Address.Road
	if raw.Address.HouseNumber != "" {
		street = raw.Address.HouseNumber + " " + street
	}

	suggestion := AddressSuggestion{
		Street: street,
		City:   city,
		State:  stateCode(raw),
		ZIP:    raw.Address.Postcode,
		County: raw.Address.County,
		Lat:    raw.Lat,
		Lon:    raw.Lon,
	}

	suggestion.Label = buildLabel(suggestion)

	return suggestion, true
}

func pickCity(p nominatimPlace) string {
	a := p.Address
	return cmp.Or(a.City, a.Town, a.Village, a.Municipality, a.Hamlet)
}

// stateCode prefers the ISO code ("US-IL" becomes "IL") over the state name.
func stateCode(p nominatimPlace) string {
	if code, ok := strings.CutPrefix(p.Address.StateCode, "US-"); ok && len(code) == 2 {
		return code
	}
	return p.Address.State
}

func buildLabel(suggestion AddressSuggestion) string {
	label := suggestion.Street + ", " + suggestion.City
	tail := strings.TrimSpace(suggestion.State + " " + suggestion.ZIP)
	if tail != "" {
		label += ", " + tail
	}
	return label
}
