// Package postcode provides UK postcode validation, parsing and the
// premium-area price multipliers used by quoting.
package postcode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var pattern = regexp.MustCompile(`^([A-Z]{1,2})(\d{1,2}[A-Z]?)(\d)([A-Z]{2})$`)

// Service areas, from nearest to furthest.
var (
	primaryAreas   = map[string]bool{"NW3": true, "NW6": true, "NW11": true}
	secondaryAreas = map[string]bool{"NW2": true, "NW8": true, "N6": true, "N2": true, "N10": true}
	tertiaryAreas  = map[string]bool{"NW1": true, "NW5": true, "NW10": true, "N1": true, "N3": true, "N7": true}
)

// premiumAreas maps districts to their price multipliers. Premium areas
// command higher prices: higher property values, more complex planning,
// conservation-area considerations.
var premiumAreas = map[string]decimal.Decimal{
	"NW3":  decimal.RequireFromString("1.15"), // Hampstead
	"NW11": decimal.RequireFromString("1.10"), // Hampstead Garden Suburb
	"N6":   decimal.RequireFromString("1.08"), // Highgate
	"NW6":  decimal.RequireFromString("1.05"), // West Hampstead
}

var areaNames = map[string]string{
	"NW3":  "Hampstead",
	"NW6":  "West Hampstead / Kilburn",
	"NW11": "Hampstead Garden Suburb",
	"NW2":  "Cricklewood / Dollis Hill",
	"NW8":  "St John's Wood",
	"N6":   "Highgate",
	"N2":   "East Finchley",
	"N10":  "Muswell Hill",
	"NW1":  "Camden Town",
	"NW5":  "Kentish Town",
	"N1":   "Islington",
	"N3":   "Finchley",
	"N7":   "Holloway",
}

// Info holds the parsed components of a UK postcode.
type Info struct {
	Original      string
	Normalized    string
	Outward       string
	Inward        string
	Area          string
	District      string
	InServiceArea bool
	IsPremiumArea bool
	AreaName      string
}

// Normalize validates a UK postcode and returns its canonical form
// ("nw31qe" -> "NW3 1QE").
func Normalize(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if len(cleaned) < 5 || len(cleaned) > 7 {
		return "", fmt.Errorf("invalid postcode length: %q", raw)
	}

	m := pattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", fmt.Errorf("invalid postcode format: %q", raw)
	}

	return m[1] + m[2] + " " + m[3] + m[4], nil
}

// Valid reports whether raw is a well-formed UK postcode.
func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

// Parse extracts detailed information from a UK postcode.
func Parse(raw string) (*Info, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(normalized, " ", 2)
	outward := parts[0]
	inward := ""
	if len(parts) > 1 {
		inward = parts[1]
	}

	area := outward
	for i, r := range outward {
		if r >= '0' && r <= '9' {
			area = outward[:i]
			break
		}
	}

	// District is the letters plus the leading digits (drops a trailing
	// letter in outcodes like W1A).
	district := outward
	for i := len(area); i < len(outward); i++ {
		if outward[i] < '0' || outward[i] > '9' {
			district = outward[:i]
			break
		}
	}

	return &Info{
		Original:      raw,
		Normalized:    normalized,
		Outward:       outward,
		Inward:        inward,
		Area:          area,
		District:      district,
		InServiceArea: primaryAreas[district] || secondaryAreas[district] || tertiaryAreas[district],
		IsPremiumArea: !premiumAreas[district].IsZero(),
		AreaName:      areaNames[district],
	}, nil
}

// ServiceTier returns "primary", "secondary" or "tertiary" for postcodes
// inside the service area, or "" otherwise.
func ServiceTier(raw string) string {
	info, err := Parse(raw)
	if err != nil {
		return ""
	}

	switch {
	case primaryAreas[info.District]:
		return "primary"
	case secondaryAreas[info.District]:
		return "secondary"
	case tertiaryAreas[info.District]:
		return "tertiary"
	default:
		return ""
	}
}

// LocationMultiplier returns the premium-area price multiplier for a
// postcode, or 1.0 for non-premium or unparseable postcodes.
func LocationMultiplier(raw string) decimal.Decimal {
	info, err := Parse(raw)
	if err != nil {
		return decimal.NewFromInt(1)
	}

	if m, ok := premiumAreas[info.District]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}
