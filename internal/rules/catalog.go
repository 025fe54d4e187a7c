package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// Service tiers recognised by the pricing catalog.
const (
	TierEssential = "essential"
	TierPremium   = "premium"
	TierLuxury    = "luxury"
)

// CatalogItem is a single priced line in the catalog. An item may carry a
// per-tier price column; otherwise it falls back to PriceFrom, then Price.
type CatalogItem struct {
	Name           string           `json:"name"`
	Unit           string           `json:"unit"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Tiers          []string         `json:"tiers"`
	PriceEssential *decimal.Decimal `json:"price_essential"`
	PricePremium   *decimal.Decimal `json:"price_premium"`
	PriceLuxury    *decimal.Decimal `json:"price_luxury"`
	PriceFrom      *decimal.Decimal `json:"price_from"`
	Price          *decimal.Decimal `json:"price"`
	Notes          string           `json:"notes"`
}

// AppliesTo reports whether the item is available at the given tier.
// Items without an explicit tier list use defaultTiers.
func (i CatalogItem) AppliesTo(tier string, defaultTiers []string) bool {
	tiers := i.Tiers
	if len(tiers) == 0 {
		tiers = defaultTiers
	}
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// UnitPrice returns the base unit price for the given tier: the tier column
// when present, else price_from, else price, else zero.
func (i CatalogItem) UnitPrice(tier string) decimal.Decimal {
	var tierPrice *decimal.Decimal
	switch tier {
	case TierEssential:
		tierPrice = i.PriceEssential
	case TierPremium:
		tierPrice = i.PricePremium
	case TierLuxury:
		tierPrice = i.PriceLuxury
	}
	if tierPrice != nil {
		return *tierPrice
	}
	if i.PriceFrom != nil {
		return *i.PriceFrom
	}
	if i.Price != nil {
		return *i.Price
	}
	return decimal.Zero
}

// FallbackPrice ignores tier columns, for upgrade items which are priced
// with price_from/price only.
func (i CatalogItem) FallbackPrice() decimal.Decimal {
	if i.PriceFrom != nil {
		return *i.PriceFrom
	}
	if i.Price != nil {
		return *i.Price
	}
	return decimal.Zero
}

// Timeline describes the estimated project schedule for a category.
type Timeline struct {
	DurationWeeks string   `json:"duration_weeks"`
	Phases        []string `json:"phases"`
}

// Category groups the catalog entries for one project type.
type Category struct {
	DisplayName     string        `json:"display_name"`
	BaseItems       []CatalogItem `json:"base_items"`
	PremiumUpgrades []CatalogItem `json:"premium_upgrades"`
	Timeline        *Timeline     `json:"timeline"`
}

// VolumeDiscount is one threshold step of the discount ladder.
type VolumeDiscount struct {
	Threshold          decimal.Decimal `json:"threshold"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// PricingMatrix is the full pricing catalog: per-category items, location
// factors and the volume-discount ladder.
type PricingMatrix struct {
	Categories      map[string]Category        `json:"categories"`
	LocationFactors map[string]decimal.Decimal `json:"location_factors"`
	VolumeDiscounts []VolumeDiscount           `json:"volume_discounts"`
}

// LoadPricingMatrix reads and validates the pricing catalog. Volume
// discounts are sorted ascending by threshold so the last qualifying entry
// is the highest one.
func LoadPricingMatrix(path string) (*PricingMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var matrix PricingMatrix
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if len(matrix.Categories) == 0 {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("catalog has no categories")}
	}
	for name, cat := range matrix.Categories {
		if len(cat.BaseItems) == 0 {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("category %s has no base items", name)}
		}
		matrix.Categories[name] = normalizeCategory(cat)
	}

	sort.SliceStable(matrix.VolumeDiscounts, func(a, b int) bool {
		return matrix.VolumeDiscounts[a].Threshold.LessThan(matrix.VolumeDiscounts[b].Threshold)
	})

	return &matrix, nil
}

func normalizeCategory(cat Category) Category {
	for i := range cat.BaseItems {
		if cat.BaseItems[i].Quantity.IsZero() {
			cat.BaseItems[i].Quantity = decimal.NewFromInt(1)
		}
	}
	for i := range cat.PremiumUpgrades {
		if cat.PremiumUpgrades[i].Quantity.IsZero() {
			cat.PremiumUpgrades[i].Quantity = decimal.NewFromInt(1)
		}
	}
	return cat
}

// LocationFactor returns the price multiplier for a postcode area,
// defaulting to 1.0 for unmatched areas.
func (m *PricingMatrix) LocationFactor(area string) decimal.Decimal {
	if area == "" {
		return decimal.NewFromInt(1)
	}
	if factor, ok := m.LocationFactors[area]; ok {
		return factor
	}
	return decimal.NewFromInt(1)
}

// ProjectTimeline returns the category timeline, or a generic one when the
// category does not define any.
func (m *PricingMatrix) ProjectTimeline(projectType string) Timeline {
	if cat, ok := m.Categories[projectType]; ok && cat.Timeline != nil {
		return *cat.Timeline
	}
	return Timeline{
		DurationWeeks: "4-6",
		Phases:        []string{"Planning", "Execution", "Completion"},
	}
}

// Set bundles the loaded rule tables for injection into modules.
type Set struct {
	Scoring *ScoringRules
	Pricing *PricingMatrix
}

// Load reads both rule files. Any failure is a fatal startup error.
func Load(scoringPath, pricingPath string) (*Set, error) {
	scoring, err := LoadScoringRules(scoringPath)
	if err != nil {
		return nil, err
	}

	pricing, err := LoadPricingMatrix(pricingPath)
	if err != nil {
		return nil, err
	}

	return &Set{Scoring: scoring, Pricing: pricing}, nil
}
