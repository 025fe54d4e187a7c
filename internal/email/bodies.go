package email

import (
	"fmt"
	"strings"

	"hampstead_backend/internal/shared/format"
)

func quoteEmailBody(quote QuoteEmail) string {
	firstName := "there"
	if fields := strings.Fields(quote.CustomerName); len(fields) > 0 {
		firstName = fields[0]
	}

	service := "renovation"
	if quote.ProjectType != "" {
		service = strings.NewReplacer("_", " ", "-", " ").Replace(quote.ProjectType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", firstName)
	fmt.Fprintf(&b, "Thank you for taking the time to discuss your %s project with us. It was great to meet you and see your property.\n\n", service)
	fmt.Fprintf(&b, "Please find attached our detailed quotation (%s) for the works we discussed. The quote totals %s including VAT.\n\n",
		quote.QuoteNumber, format.Currency(quote.Total))

	if quote.Duration != "" {
		fmt.Fprintf(&b, "Based on our survey, we estimate the project would take approximately %s to complete.\n\n", quote.Duration)
	}

	fmt.Fprintf(&b, "This quote is valid until %s.\n\n", format.DateUK(quote.ValidUntil))
	b.WriteString("Please don't hesitate to get in touch if you have any questions or would like to discuss any aspect of the quote. We're happy to arrange a call or meeting to go through everything in detail.\n\n")
	b.WriteString("We look forward to hearing from you.\n\n")
	b.WriteString("Best regards,\nHampstead Renovations\n\n")
	b.WriteString("P.S. If you'd like to see examples of similar projects we've completed, do let us know and we'll send over some photos and case studies.")

	return b.String()
}

func hotLeadAlertBody(alert HotLeadAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new hot lead just came in and should be contacted %s.\n\n", alert.ResponseTime)
	fmt.Fprintf(&b, "Lead:      %s\n", alert.LeadID)
	fmt.Fprintf(&b, "Name:      %s\n", alert.Name)
	fmt.Fprintf(&b, "Email:     %s\n", alert.Email)
	fmt.Fprintf(&b, "Phone:     %s\n", alert.Phone)
	fmt.Fprintf(&b, "Postcode:  %s\n", alert.Postcode)
	fmt.Fprintf(&b, "Project:   %s\n", format.DisplayName(alert.ProjectType))
	fmt.Fprintf(&b, "Budget:    %s\n", alert.BudgetRange)
	fmt.Fprintf(&b, "Score:     %d/100\n", alert.TotalScore)
	return b.String()
}
