package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/docbill/internal/document"
)

// Sender is the signature block appended to every document email.
type Sender struct {
	Name        string
	Title       string
	DirectPhone string
	WebsiteURL  string
	CompanyName string
}

// Subject builds the email subject line for a document.
func Subject(kind document.Kind, ref, companyName string) string {
	return fmt.Sprintf("%s %s from %s", kind.Heading(), ref, companyName)
}

// BuildBody renders the HTML email body. The greeting follows the local
// hour at the shop, not the server clock's zone.
func BuildBody(customerName string, kind document.Kind, ref string, now time.Time, sender Sender) string {
	first := firstName(customerName)

	greeting := "Good evening"
	switch hour := now.Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s %s,</p>\n", greeting, first)
	fmt.Fprintf(&b, "<p>Attached is the %s (%s) you requested. Please take a moment at your earliest convenience and look it over. If you have any questions, comments, or concerns please don’t hesitate to contact me.</p>\n", kind.String(), ref)
	fmt.Fprintf(&b, "<p>Thank you for choosing %s.</p>\n", sender.CompanyName)
	b.WriteString("<hr>\n<p>\n")
	fmt.Fprintf(&b, "  Best regards,<br>\n  <b>%s</b><br>\n  %s<br>\n  Direct: %s<br>\n", sender.Name, sender.Title, sender.DirectPhone)
	fmt.Fprintf(&b, "  <a href=%q>Click here for our website</a>\n</p>\n", sender.WebsiteURL)
	return b.String()
}

func firstName(customerName string) string {
	fields := strings.Fields(customerName)
	if len(fields) == 0 {
		return "Customer"
	}
	return fields[0]
}
