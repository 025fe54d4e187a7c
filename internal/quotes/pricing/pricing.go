// Package pricing implements the quote calculation engine: catalog item
// selection by tier, location-adjusted unit prices, volume discounts and
// VAT, all in exact decimal arithmetic.
package pricing

import (
	"hampstead_backend/internal/rules"
	"hampstead_backend/internal/shared/format"
	"hampstead_backend/internal/shared/postcode"
	"hampstead_backend/platform/logger"

	"github.com/shopspring/decimal"
)

var (
	vatRate = decimal.RequireFromString("0.20")

	baseTierDefaults    = []string{rules.TierEssential, rules.TierPremium, rules.TierLuxury}
	upgradeTierDefaults = []string{rules.TierPremium, rules.TierLuxury}
)

// LineItem is a single priced line, with the unit price already adjusted
// for location.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Notes       string          `json:"notes,omitempty"`
}

// Total is the net amount for the line, rounded half-up to two decimals.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice).Round(2)
}

// Section groups related line items under a heading.
type Section struct {
	Name  string     `json:"name"`
	Items []LineItem `json:"items"`
}

// Subtotal sums the section's line totals.
func (s Section) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}

// PricedQuote is the fully calculated quote. All monetary fields are
// decimal-exact and derived once.
type PricedQuote struct {
	Sections              []Section       `json:"sections"`
	LocationFactor        decimal.Decimal `json:"location_factor"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DiscountPercentage    decimal.Decimal `json:"discount_percentage"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotal_after_discount"`
	VAT                   decimal.Decimal `json:"vat"`
	Total                 decimal.Decimal `json:"total"`
}

// Engine prices project specifications against an immutable catalog. It is
// pure and safe for concurrent use.
type Engine struct {
	matrix *rules.PricingMatrix
	log    *logger.Logger
}

// NewEngine creates a pricing engine over a loaded catalog.
func NewEngine(matrix *rules.PricingMatrix, log *logger.Logger) *Engine {
	return &Engine{matrix: matrix, log: log}
}

// LocationFactor returns the price multiplier for a customer postcode,
// defaulting to 1.0 outside the premium districts.
func (e *Engine) LocationFactor(customerPostcode string) decimal.Decimal {
	info, err := postcode.Parse(customerPostcode)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return e.matrix.LocationFactor(info.District)
}

// ProjectTimeline returns the estimated schedule for a project type.
func (e *Engine) ProjectTimeline(projectType string) rules.Timeline {
	return e.matrix.ProjectTimeline(projectType)
}

// Price calculates an itemized quote. An unknown project type yields a
// quote with no sections and zero totals rather than an error.
func (e *Engine) Price(projectType, tier, customerPostcode string, includeUpgrades bool) PricedQuote {
	factor := e.LocationFactor(customerPostcode)

	var sections []Section

	category, known := e.matrix.Categories[projectType]
	if !known && e.log != nil {
		e.log.RuleDefaultApplied("project_type", projectType)
	}

	if items := e.selectItems(category.BaseItems, tier, factor, baseTierDefaults, false); len(items) > 0 {
		sections = append(sections, Section{
			Name:  format.DisplayName(projectType) + " - Core Works",
			Items: items,
		})
	}

	if tier != rules.TierEssential && includeUpgrades {
		if items := e.selectItems(category.PremiumUpgrades, tier, factor, upgradeTierDefaults, true); len(items) > 0 {
			sections = append(sections, Section{
				Name:  "Premium Upgrades & Enhancements",
				Items: items,
			})
		}
	}

	subtotal := decimal.Zero
	for _, section := range sections {
		subtotal = subtotal.Add(section.Subtotal())
	}

	discountPct := e.volumeDiscount(subtotal)
	discountAmount := subtotal.Mul(discountPct).Div(decimal.NewFromInt(100)).Round(2)
	afterDiscount := subtotal.Sub(discountAmount)

	vat := afterDiscount.Mul(vatRate).Round(2)
	total := afterDiscount.Add(vat)

	return PricedQuote{
		Sections:              sections,
		LocationFactor:        factor,
		Subtotal:              subtotal,
		DiscountPercentage:    discountPct,
		DiscountAmount:        discountAmount,
		SubtotalAfterDiscount: afterDiscount,
		VAT:                   vat,
		Total:                 total,
	}
}

// selectItems filters catalog items by tier and applies the location factor
// to their unit prices. Upgrade items are priced from their fallback column
// only; base items may carry per-tier price columns.
func (e *Engine) selectItems(items []rules.CatalogItem, tier string, factor decimal.Decimal, defaultTiers []string, fallbackOnly bool) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if !item.AppliesTo(tier, defaultTiers) {
			continue
		}

		base := item.UnitPrice(tier)
		if fallbackOnly {
			base = item.FallbackPrice()
		}

		quantity := item.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}

		out = append(out, LineItem{
			Description: item.Name,
			Quantity:    quantity,
			Unit:        unitOrDefault(item.Unit),
			UnitPrice:   base.Mul(factor).Round(2),
			Notes:       item.Notes,
		})
	}
	return out
}

// volumeDiscount returns the percentage for the highest threshold not
// exceeding the subtotal. The discount ladder is sorted ascending at load
// time, so the last qualifying entry wins.
func (e *Engine) volumeDiscount(subtotal decimal.Decimal) decimal.Decimal {
	discount := decimal.Zero
	for _, step := range e.matrix.VolumeDiscounts {
		if subtotal.GreaterThanOrEqual(step.Threshold) {
			discount = step.DiscountPercentage
		}
	}
	return discount
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "item"
	}
	return unit
}
