package rules

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const validScoringYAML = `
budget:
  default: 10
  weights:
    200000_plus: 30
    under_10000: 6
timeline:
  default: 10
  weights:
    asap: 25
project_type:
  default: 10
  weights:
    kitchen: 16
location:
  premium_prefixes: [NW3, NW6]
  premium_points: 25
  north_points: 20
  west_points: 18
  default: 12
qualification:
  hot: 80
  warm: 50
`

const validPricingJSON = `{
  "categories": {
    "kitchen": {
      "display_name": "Kitchen",
      "base_items": [
        {"name": "Units", "unit": "job", "price_essential": 100, "price_premium": 250}
      ],
      "premium_upgrades": [
        {"name": "Worktop", "price_from": 50, "tiers": ["premium", "luxury"]}
      ]
    }
  },
  "location_factors": {"NW3": 1.15},
  "volume_discounts": [
    {"threshold": 50000, "discount_percentage": 5},
    {"threshold": 25000, "discount_percentage": 2.5}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadScoringRules(t *testing.T) {
	rules, err := LoadScoringRules(writeFile(t, "scoring.yaml", validScoringYAML))
	if err != nil {
		t.Fatalf("LoadScoringRules failed: %v", err)
	}

	if pts, found := rules.Budget.Points("200000_plus"); pts != 30 || !found {
		t.Fatalf("budget points = %d found=%v, want 30 true", pts, found)
	}
	if pts, found := rules.Budget.Points("unheard_of"); pts != 10 || found {
		t.Fatalf("budget default = %d found=%v, want 10 false", pts, found)
	}
	if rules.Qualification.Hot != 80 || rules.Qualification.Warm != 50 {
		t.Fatalf("thresholds = %+v, want 80/50", rules.Qualification)
	}
}

func TestLoadScoringRulesMissingFile(t *testing.T) {
	_, err := LoadScoringRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestLoadScoringRulesRejectsBadThresholds(t *testing.T) {
	bad := strings.Replace(validScoringYAML, "hot: 80", "hot: 40", 1)

	path := writeFile(t, "scoring.yaml", bad)
	if _, err := LoadScoringRules(path); err == nil {
		t.Fatal("expected error for hot <= warm")
	}
}

func TestLoadScoringRulesRejectsEmptyAxis(t *testing.T) {
	path := writeFile(t, "scoring.yaml", `
budget:
  default: 10
qualification:
  hot: 80
  warm: 50
`)
	if _, err := LoadScoringRules(path); err == nil {
		t.Fatal("expected error for axis without weights")
	}
}

func TestLoadPricingMatrix(t *testing.T) {
	matrix, err := LoadPricingMatrix(writeFile(t, "pricing.json", validPricingJSON))
	if err != nil {
		t.Fatalf("LoadPricingMatrix failed: %v", err)
	}

	// Discounts sorted ascending regardless of file order.
	if !matrix.VolumeDiscounts[0].Threshold.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("discounts not sorted: %v", matrix.VolumeDiscounts)
	}

	if !matrix.LocationFactor("NW3").Equal(decimal.RequireFromString("1.15")) {
		t.Fatalf("NW3 factor = %s, want 1.15", matrix.LocationFactor("NW3"))
	}
	if !matrix.LocationFactor("SE1").Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unmatched factor = %s, want 1", matrix.LocationFactor("SE1"))
	}
	if !matrix.LocationFactor("").Equal(decimal.NewFromInt(1)) {
		t.Fatalf("empty area factor = %s, want 1", matrix.LocationFactor(""))
	}

	// Quantity defaults to 1 when omitted.
	item := matrix.Categories["kitchen"].BaseItems[0]
	if !item.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("quantity = %s, want 1", item.Quantity)
	}
}

func TestLoadPricingMatrixRejectsEmptyCatalog(t *testing.T) {
	if _, err := LoadPricingMatrix(writeFile(t, "pricing.json", `{"categories": {}}`)); err == nil {
		t.Fatal("expected error for empty catalog")
	}

	noItems := `{"categories": {"kitchen": {"base_items": []}}}`
	if _, err := LoadPricingMatrix(writeFile(t, "pricing.json", noItems)); err == nil {
		t.Fatal("expected error for category without items")
	}
}

func TestCatalogItemUnitPrice(t *testing.T) {
	essential := decimal.NewFromInt(100)
	premium := decimal.NewFromInt(250)
	from := decimal.NewFromInt(80)

	item := CatalogItem{PriceEssential: &essential, PricePremium: &premium, PriceFrom: &from}

	if !item.UnitPrice(TierEssential).Equal(essential) {
		t.Fatalf("essential price = %s, want 100", item.UnitPrice(TierEssential))
	}
	if !item.UnitPrice(TierPremium).Equal(premium) {
		t.Fatalf("premium price = %s, want 250", item.UnitPrice(TierPremium))
	}
	// No luxury column: falls back to price_from.
	if !item.UnitPrice(TierLuxury).Equal(from) {
		t.Fatalf("luxury price = %s, want 80", item.UnitPrice(TierLuxury))
	}

	empty := CatalogItem{}
	if !empty.UnitPrice(TierPremium).IsZero() {
		t.Fatalf("unpriced item should cost zero")
	}
}

func TestCatalogItemAppliesTo(t *testing.T) {
	defaults := []string{TierEssential, TierPremium, TierLuxury}

	unrestricted := CatalogItem{}
	if !unrestricted.AppliesTo(TierEssential, defaults) {
		t.Fatal("item without tier list should use defaults")
	}

	gated := CatalogItem{Tiers: []string{TierLuxury}}
	if gated.AppliesTo(TierPremium, defaults) {
		t.Fatal("luxury-only item should not apply to premium")
	}
	if !gated.AppliesTo(TierLuxury, defaults) {
		t.Fatal("luxury-only item should apply to luxury")
	}
}
