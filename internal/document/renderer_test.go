package document

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testBranding = Branding{
	CompanyName:   "J & I Heating and Cooling",
	AddressLine1:  "2788 N. 48th Rd.",
	AddressLine2:  "Sandwich IL, 60548",
	Phone:         "Phone (630) 849-0385",
	LicensingLine: "Insured and Bonded",
	Tagline:       "Thank you for choosing J & I Heating and Cooling.",
}

func testRenderer() *Renderer {
	// Uncompressed output keeps the content streams greppable.
	return NewRenderer(testBranding, WithoutCompression())
}

func issueDate() time.Time {
	return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
}

func sampleItems() []LineItem {
	return []LineItem{
		{Description: "Furnace filter", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("25.00")},
		{Description: "Labor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("150.00")},
	}
}

func renderOrFail(t *testing.T, req Request) []byte {
	t.Helper()
	out, err := testRenderer().Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("render produced no bytes")
	}
	return out
}

func TestRenderProposalTotals(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0010",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		IssueDate:       issueDate(),
	})

	for _, want := range []string{
		"Proposal #: P-0010",
		"Furnace filter",
		"Labor",
		"Subtotal:",
		"Grand Total:",
		"$200.00",
		"Valid until: 03/20/2024",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("rendered proposal missing %q", want)
		}
	}
	// No invoice-only content on a proposal.
	for _, banned := range []string{"Deposit:", "Check #", "PAID", "Due Date"} {
		if bytes.Contains(out, []byte(banned)) {
			t.Errorf("proposal must not contain %q", banned)
		}
	}
}

func TestRenderInvoiceDepositAndGrandTotal(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindInvoice,
		ReferenceNumber: "INV-0010",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		Invoice: &InvoiceFields{
			Deposit:     decimal.RequireFromString("50.00"),
			CheckNumber: "1187",
		},
		IssueDate: issueDate(),
	})

	for _, want := range []string{
		"Invoice #: INV-0010",
		"Due Date: 03/05/2024",
		"$200.00",
		"-$50.00",
		"$150.00",
		"Check #: 1187",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("rendered invoice missing %q", want)
		}
	}
}

func TestRenderInvoiceZeroDepositOmitsDepositLine(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindInvoice,
		ReferenceNumber: "INV-0011",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		Invoice:         &InvoiceFields{},
		IssueDate:       issueDate(),
	})
	if bytes.Contains(out, []byte("Deposit:")) {
		t.Error("zero deposit must not render a deposit line")
	}
	if bytes.Contains(out, []byte("Check #")) {
		t.Error("empty check number must not render a check line")
	}
}

func TestRenderPaidStamp(t *testing.T) {
	base := Request{
		Kind:            KindInvoice,
		ReferenceNumber: "INV-0012",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		Invoice:         &InvoiceFields{ShowPaidStamp: true},
		IssueDate:       issueDate(),
	}
	withStamp := renderOrFail(t, base)
	if !bytes.Contains(withStamp, []byte("PAID")) {
		t.Error("expected PAID stamp")
	}

	base.Invoice = &InvoiceFields{ShowPaidStamp: false}
	withoutStamp := renderOrFail(t, base)
	if bytes.Contains(withoutStamp, []byte("PAID")) {
		t.Error("unexpected PAID stamp")
	}
}

func TestRenderDeterministic(t *testing.T) {
	req := Request{
		Kind:            KindInvoice,
		ReferenceNumber: "INV-0013",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		Invoice:         &InvoiceFields{Deposit: decimal.NewFromInt(25)},
		Notes:           "Thank you for your business.",
		IssueDate:       issueDate(),
	}
	first := renderOrFail(t, req)
	second := renderOrFail(t, req)
	if !bytes.Equal(first, second) {
		t.Fatal("rendering is not deterministic")
	}
}

func TestRenderManyItemsSpansPagesWithoutContentLoss(t *testing.T) {
	items := make([]LineItem, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, LineItem{
			Description: fmt.Sprintf("Service visit %02d with full inspection of the unit", i),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("85.00"),
		})
	}
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0020",
		CustomerName:    "Pat Meyer",
		LineItems:       items,
		IssueDate:       issueDate(),
	})

	for i := 0; i < 60; i++ {
		needle := fmt.Sprintf("Service visit %02d", i)
		if count := bytes.Count(out, []byte(needle)); count != 1 {
			t.Errorf("item %q appears %d times, want exactly 1", needle, count)
		}
	}
	if !bytes.Contains(out, []byte("Page 2")) {
		t.Error("expected at least two pages")
	}
	// The repeating header is redrawn on continuation pages.
	if count := bytes.Count(out, []byte(testBranding.CompanyName)); count < 2 {
		t.Errorf("company header drawn %d times, want one per page", count)
	}
}

func TestRenderLongItemBreaksMidItem(t *testing.T) {
	// One filler row short of the bottom margin, then a single item whose
	// wrapped description must continue on the next page.
	items := make([]LineItem, 0, 30)
	for i := 0; i < 24; i++ {
		items = append(items, LineItem{
			Description: fmt.Sprintf("Filler row %02d", i),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(10),
		})
	}
	long := strings.Repeat("inspect and clean burner assembly ", 10)
	items = append(items, LineItem{
		Description: long,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(500),
	})
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0021",
		CustomerName:    "Pat Meyer",
		LineItems:       items,
		IssueDate:       issueDate(),
	})

	wrapped := wrapText(long, descWrapWidth)
	for _, line := range wrapped {
		if count := bytes.Count(out, []byte(line)); count < 1 {
			t.Errorf("wrapped line %q missing from output", line)
		}
	}
	if !bytes.Contains(out, []byte("Page 2")) {
		t.Error("expected the long item to push onto a second page")
	}
}

func TestRenderNotesAndSignaturePlaceholder(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0022",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		Notes:           "Includes haul-away of the old unit. Permit fees billed separately.",
		IssueDate:       issueDate(),
	})
	for _, want := range []string{
		"Includes haul-away of the old unit.",
		"X ____________________",
		"Date: ______________",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("rendered output missing %q", want)
		}
	}
}

func testSignaturePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRenderSuppliedSignatureImage(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0024",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		SignatureImage:  testSignaturePNG(t),
		SignatureDate:   "03/05/2024",
		IssueDate:       issueDate(),
	})
	if !bytes.Contains(out, []byte("Signed: 03/05/2024")) {
		t.Error("expected the signed date beside the signature image")
	}
	for _, banned := range []string{"X ____________________", "Date: ______________"} {
		if bytes.Contains(out, []byte(banned)) {
			t.Errorf("supplied signature must suppress the placeholder %q", banned)
		}
	}
}

func TestRenderInvalidSignatureBytesFallBackToPlaceholder(t *testing.T) {
	out := renderOrFail(t, Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0025",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		SignatureImage:  []byte("scribble, not an image"),
		SignatureDate:   "03/05/2024",
		IssueDate:       issueDate(),
	})
	if bytes.Contains(out, []byte("Signed:")) {
		t.Error("unusable signature bytes must not print a signed date")
	}
	if !bytes.Contains(out, []byte("X ____________________")) {
		t.Error("expected the signature placeholder when the image is rejected")
	}
}

func TestRenderInvalidLogoIsNonFatal(t *testing.T) {
	branding := testBranding
	branding.Logo = []byte("not an image at all")
	r := NewRenderer(branding, WithoutCompression())
	out, err := r.Render(Request{
		Kind:            KindProposal,
		ReferenceNumber: "P-0023",
		CustomerName:    "Pat Meyer",
		LineItems:       sampleItems(),
		IssueDate:       issueDate(),
	})
	if err != nil {
		t.Fatalf("render with bad logo should not fail: %v", err)
	}
	if !bytes.Contains(out, []byte("Proposal #: P-0023")) {
		t.Fatal("document content missing")
	}
}

func TestComputeTotalsClampsAtZero(t *testing.T) {
	req := Request{
		Kind:      KindInvoice,
		LineItems: sampleItems(),
		Invoice:   &InvoiceFields{Deposit: decimal.NewFromInt(500)},
	}
	req.ComputeTotals()
	if !req.Subtotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("subtotal = %s, want 200", req.Subtotal)
	}
	if !req.GrandTotal.IsZero() {
		t.Fatalf("grand total = %s, want 0", req.GrandTotal)
	}
}

func TestComputeTotalsProposalIgnoresDeposit(t *testing.T) {
	req := Request{Kind: KindProposal, LineItems: sampleItems()}
	req.ComputeTotals()
	if !req.GrandTotal.Equal(req.Subtotal) {
		t.Fatalf("proposal grand total %s must equal subtotal %s", req.GrandTotal, req.Subtotal)
	}
}
