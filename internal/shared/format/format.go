// Package format provides currency, document-number and display formatting
// shared by the quoting and document modules.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.BritishEnglish)

// Currency formats a monetary amount in GBP, e.g. "£1,234.56".
// The amount is rounded half-up to two decimal places.
func Currency(amount decimal.Decimal) string {
	return "£" + CurrencyPlain(amount)
}

// CurrencyPlain formats a monetary amount without the pound symbol.
func CurrencyPlain(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// InvoiceNumber formats a sequential invoice number, e.g. "INV-2024-0001".
func InvoiceNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("INV-%s-%04d", date.Format("2006"), sequence)
}

// ContractNumber formats a sequential contract number, e.g. "CON-2024-0001".
func ContractNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("CON-%s-%04d", date.Format("2006"), sequence)
}

var nonLetters = regexp.MustCompile(`[^a-zA-Z]`)

// ProjectFolderName builds a standardized project folder name, e.g.
// "2024-12_NW3-1QE_Smith_Kitchen-Extension".
func ProjectFolderName(now time.Time, clientName, postcode, serviceType string) string {
	cleanPostcode := strings.ReplaceAll(strings.ToUpper(postcode), " ", "-")

	lastName := clientName
	if fields := strings.Fields(clientName); len(fields) > 0 {
		lastName = fields[len(fields)-1]
	}
	cleanName := nonLetters.ReplaceAllString(lastName, "")
	if len(cleanName) > 15 {
		cleanName = cleanName[:15]
	}

	cleanService := strings.ReplaceAll(serviceType, " ", "-")
	if len(cleanService) > 20 {
		cleanService = cleanService[:20]
	}

	return fmt.Sprintf("%s_%s_%s_%s", now.Format("2006-01"), cleanPostcode, cleanName, cleanService)
}

// DisplayName turns a snake_case or kebab-case identifier into a
// title-cased label, e.g. "loft_conversion" -> "Loft Conversion".
func DisplayName(identifier string) string {
	spaced := strings.NewReplacer("_", " ", "-", " ").Replace(identifier)
	return titleCaser.String(spaced)
}

// DateUK formats a date in UK style, e.g. "4th December 2024".
func DateUK(t time.Time) string {
	day := t.Day()
	suffix := "th"
	if day < 11 || day > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s %s %d", day, suffix, t.Month().String(), t.Year())
}
