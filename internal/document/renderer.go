package document

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"

	_ "image/jpeg"
	_ "image/png"
)

// Branding carries the fixed header/footer content drawn on every page.
type Branding struct {
	CompanyName   string
	AddressLine1  string
	AddressLine2  string
	Phone         string
	LicensingLine string
	Tagline       string
	Logo          []byte
}

// Page geometry in points. Letter, 1in content margins, column offsets and
// row heights carried over from the legacy layout.
const (
	pageW = 612.0
	pageH = 792.0

	marginX = 72.0
	bottomY = pageH - 72.0

	logoX = pageW - 120.0
	logoY = 20.0
	logoW = 100.0
	logoH = 60.0

	headerNameY  = 72.0
	headerLineY0 = 90.0
	headerLineH  = 14.4

	metaY0     = 165.6
	metaLineH  = 14.4
	metaRightX = pageW - 180.0
	termsY     = 187.2

	stampX     = pageW / 2
	stampY     = 216.0
	stampDateY = 244.8

	tableTopY    = 259.2
	contentTopY  = 158.4
	colHeaderGap = 16.0
	rowH         = 18.0
	notesLineH   = 14.0

	colDescX  = 72.0
	colQtyX   = 316.8
	colUnitX  = 388.8
	colTotalX = 460.8

	totalsLabelX = 360.0

	footerY = 756.0

	sigW = 150.0
	sigH = 40.0

	descWrapWidth  = 50
	notesWrapWidth = 90
)

const dateLayout = "01/02/2006"

// proposalValidityDays is how long a proposal offer stands.
const proposalValidityDays = 15

// Renderer produces paginated Letter-size PDFs for proposals and invoices.
// It holds no mutable state between calls and is safe for concurrent use.
type Renderer struct {
	branding Branding
	compress bool
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithoutCompression disables content-stream compression. Output stays
// valid PDF; tests use it to assert on rendered text.
func WithoutCompression() RendererOption {
	return func(r *Renderer) { r.compress = false }
}

// NewRenderer builds a renderer with the given branding.
func NewRenderer(branding Branding, opts ...RendererOption) *Renderer {
	r := &Renderer{branding: branding, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out the document and returns the PDF bytes. Output is a pure
// function of the request: document dates are pinned to the issue date, so
// the same request renders byte-identical output.
func (r *Renderer) Render(req Request) ([]byte, error) {
	if req.IssueDate.IsZero() {
		req.IssueDate = time.Now()
	}
	req.ComputeTotals()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(req.IssueDate.UTC())
	pdf.SetModificationDate(req.IssueDate.UTC())
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(req.Kind.Heading()+" "+req.ReferenceNumber, false)

	l := &layout{pdf: pdf, req: &req, branding: r.branding}
	l.registerImages()
	l.startPage()

	l.drawMetaBlock()
	l.drawPaidStamp()
	l.drawColumnHeader(tableTopY)
	l.y = tableTopY + colHeaderGap

	l.drawItems()
	l.drawTotals()
	l.drawNotes()
	l.drawSignature()

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type layout struct {
	pdf      *fpdf.Fpdf
	req      *Request
	branding Branding

	y    float64
	page int

	logoRegistered bool
	sigRegistered  bool
}

func (l *layout) registerImages() {
	l.logoRegistered = registerImage(l.pdf, "brand-logo", l.branding.Logo)
	l.sigRegistered = registerImage(l.pdf, "signature", l.req.SignatureImage)
}

// registerImage validates image bytes before handing them to fpdf so a bad
// logo or signature never poisons the whole document.
func registerImage(pdf *fpdf.Fpdf, name string, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	opts := fpdf.ImageOptions{}
	switch http.DetectContentType(data) {
	case "image/png":
		opts.ImageType = "PNG"
	case "image/jpeg":
		opts.ImageType = "JPG"
	default:
		return false
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return false
	}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	return info != nil && !pdf.Err()
}

// startPage opens a new page and redraws the repeating header and footer.
func (l *layout) startPage() {
	l.page++
	l.pdf.AddPage()
	l.drawHeader()
	l.drawFooter()
}

// breakPage finishes the current page and continues the item table at the
// top of a fresh content area.
func (l *layout) breakPage(repeatColumns bool) {
	l.startPage()
	if repeatColumns {
		l.drawColumnHeader(contentTopY)
		l.y = contentTopY + colHeaderGap
		return
	}
	l.y = contentTopY
}

// ensureRoom applies the page-break policy: checked before every row, so a
// long item may legitimately continue on the next page mid-item.
func (l *layout) ensureRoom(repeatColumns bool) {
	if l.y <= bottomY {
		return
	}
	l.breakPage(repeatColumns)
}

func (l *layout) drawHeader() {
	pdf := l.pdf
	if l.logoRegistered {
		pdf.ImageOptions("brand-logo", logoX, logoY, logoW, logoH, false, fpdf.ImageOptions{}, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(marginX, headerNameY, l.branding.CompanyName)
	pdf.SetFont("Helvetica", "", 10)
	for i, line := range []string{
		l.branding.AddressLine1,
		l.branding.AddressLine2,
		l.branding.Phone,
		l.branding.LicensingLine,
	} {
		if line == "" {
			continue
		}
		pdf.Text(marginX, headerLineY0+float64(i)*headerLineH, line)
	}
}

func (l *layout) drawFooter() {
	pdf := l.pdf
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "I", 8)
	if l.branding.Tagline != "" {
		pdf.Text(marginX, footerY, l.branding.Tagline)
	}
	pageLabel := fmt.Sprintf("Page %d", l.page)
	pdf.Text(pageW-marginX-pdf.GetStringWidth(pageLabel), footerY, pageLabel)
}

func (l *layout) drawMetaBlock() {
	pdf := l.pdf
	req := l.req

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginX, metaY0, fmt.Sprintf("%s #: %s", req.Kind.Heading(), req.ReferenceNumber))
	pdf.Text(marginX, metaY0+metaLineH, "Customer: "+req.CustomerName)
	pdf.Text(marginX, metaY0+2*metaLineH, "Project: "+req.ProjectName)
	pdf.Text(marginX, metaY0+3*metaLineH, "Location: "+req.ProjectLocation)

	issue := req.IssueDate
	terms := "Due Date: " + issue.Format(dateLayout)
	if req.Kind == KindProposal {
		terms = "Valid until: " + issue.AddDate(0, 0, proposalValidityDays).Format(dateLayout)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(metaRightX, metaY0, "Date: "+issue.Format(dateLayout))
	pdf.Text(metaRightX, termsY, terms)
}

func (l *layout) drawPaidStamp() {
	req := l.req
	if req.Kind != KindInvoice || req.Invoice == nil || !req.Invoice.ShowPaidStamp {
		return
	}
	pdf := l.pdf
	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont("Helvetica", "B", 36)
	pdf.Text(stampX, stampY, "PAID")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(stampX, stampDateY, req.IssueDate.Format(dateLayout))
	pdf.SetTextColor(0, 0, 0)
}

func (l *layout) drawColumnHeader(y float64) {
	pdf := l.pdf
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(colDescX, y, "Description")
	pdf.Text(colQtyX, y, "Qty")
	pdf.Text(colUnitX, y, "Unit")
	pdf.Text(colTotalX, y, "Line Total")
	pdf.SetFont("Helvetica", "", 10)
}

// drawItems emits one row per wrapped description line; only the first line
// of an item carries the quantity and amounts.
func (l *layout) drawItems() {
	pdf := l.pdf
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range l.req.LineItems {
		lines := wrapText(item.Description, descWrapWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for j, line := range lines {
			l.ensureRoom(true)
			pdf.Text(colDescX, l.y, line)
			if j == 0 {
				pdf.Text(colQtyX, l.y, FormatQuantity(item.Quantity))
				pdf.Text(colUnitX, l.y, FormatMoney(item.UnitPrice))
				pdf.Text(colTotalX, l.y, FormatMoney(item.LineTotal()))
			}
			l.y += rowH
		}
	}
}

func (l *layout) drawTotals() {
	pdf := l.pdf
	req := l.req

	l.y += 10
	// The totals block is kept on one page.
	if l.y+4*rowH > bottomY {
		l.breakPage(false)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(totalsLabelX, l.y, "Subtotal:")
	pdf.Text(colTotalX, l.y, FormatMoney(req.Subtotal))
	l.y += rowH

	if req.Kind == KindProposal {
		pdf.Text(totalsLabelX, l.y, "Grand Total:")
		pdf.Text(colTotalX, l.y, FormatMoney(req.Subtotal))
		l.y += rowH
		return
	}

	inv := req.Invoice
	if inv != nil && inv.Deposit.IsPositive() {
		pdf.Text(totalsLabelX, l.y, "Deposit:")
		pdf.Text(colTotalX, l.y, FormatMoney(inv.Deposit.Neg()))
		l.y += rowH
	}
	pdf.Text(totalsLabelX, l.y, "Grand Total:")
	pdf.Text(colTotalX, l.y, FormatMoney(req.GrandTotal))
	l.y += rowH
	if inv != nil && inv.CheckNumber != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(marginX, l.y, "Check #: "+inv.CheckNumber)
		l.y += rowH
	}
}

func (l *layout) drawNotes() {
	if l.req.Notes == "" {
		return
	}
	pdf := l.pdf
	l.y += 7
	pdf.SetFont("Helvetica", "I", 9)
	for _, line := range wrapText(l.req.Notes, notesWrapWidth) {
		l.ensureRoom(false)
		pdf.Text(marginX, l.y, line)
		l.y += notesLineH
	}
}

func (l *layout) drawSignature() {
	pdf := l.pdf
	l.y += 40
	if l.y+sigH > bottomY {
		l.breakPage(false)
	}

	pdf.SetFont("Helvetica", "", 10)
	if l.sigRegistered {
		pdf.ImageOptions("signature", marginX, l.y, sigW, sigH, false, fpdf.ImageOptions{}, 0, "")
		if l.req.SignatureDate != "" {
			pdf.Text(4.5*72, l.y+sigH/2, "Signed: "+l.req.SignatureDate)
		}
		return
	}
	pdf.Text(marginX, l.y+sigH, "X ____________________")
	pdf.Text(4*72, l.y+sigH, "Date: ______________")
}
