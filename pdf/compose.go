package pdf

import (
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"pkt.systems/invoice"
)

const (
	lineStep      = 4.2 * mm
	footerLineGap = 11.0
	footerInset   = 6.0
)

// composer draws one document onto a gofpdf surface. It holds resolved
// assets and page metrics for the duration of a single render call.
type composer struct {
	doc   *gofpdf.Fpdf
	geom  Geometry
	fonts fontSet
	inv   invoice.Document
	total decimal.Decimal

	pageW float64
	pageH float64

	logo      string
	secondary string
	signature string
}

func newComposer(doc *gofpdf.Fpdf, g Geometry, fonts fontSet, inv invoice.Document, total decimal.Decimal) *composer {
	c := &composer{doc: doc, geom: g, fonts: fonts, inv: inv, total: total}
	c.pageW, c.pageH = doc.GetPageSize()
	if p, ok := resolveImage(inv.Settings.LogoPath, g.AssetDir); ok {
		c.logo = p
	} else if p, ok := resolveImage("logo.png", g.AssetDir); ok {
		c.logo = p
	}
	c.secondary, _ = resolveImage(inv.Settings.SecondaryLogo, g.AssetDir)
	c.signature, _ = resolveImage(inv.Settings.SignaturePath, g.AssetDir)
	return c
}

func (c *composer) contentWidth() float64 {
	return c.pageW - c.geom.MarginLeft - c.geom.MarginRight
}

func (c *composer) setFont(ref fontRef, size float64) {
	c.doc.SetFont(ref.family, ref.style, size)
}

// text draws s at (x, y) with the currently set face, encoding for core
// faces.
func (c *composer) text(ref fontRef, x, y float64, s string) {
	c.doc.Text(x, y, c.fonts.encode(ref, s))
}

func (c *composer) textWidth(ref fontRef, s string) float64 {
	return c.doc.GetStringWidth(c.fonts.encode(ref, s))
}

// measureText measures with the body face at body size, the same metrics
// the table cells are drawn with.
func (c *composer) measureText(s string) float64 {
	c.setFont(c.fonts.regular, c.geom.TextFontSize)
	return c.textWidth(c.fonts.regular, s)
}

// beginPage starts a fresh page, draws the fixed blocks, and returns the y
// where the table starts.
func (c *composer) beginPage() float64 {
	c.doc.AddPage()
	ruleY := c.drawHeaderBlock()
	infoBottom := c.drawDocumentInfo(ruleY)
	recipientBottom := c.drawRecipient(ruleY)
	return math.Max(infoBottom, recipientBottom) + c.geom.TableTopGap
}

// drawHeaderBlock places the logo on the left, the centered title, and the
// business name block (or secondary logo) on the right, then the rule below
// the header. Returns the rule's y.
func (c *composer) drawHeaderBlock() float64 {
	g := c.geom
	// The logo rides 10mm into the top margin; the shipped layout anchors
	// the title baseline to the logo's vertical middle.
	logoTop := g.MarginTop - 10*mm
	if logoTop < 2*mm {
		logoTop = 2 * mm
	}
	if c.logo != "" {
		c.drawImageFit(c.logo, g.MarginLeft, logoTop, g.LogoWidth, g.LogoHeight)
	}
	mid := logoTop + g.LogoHeight/2

	c.setFont(c.fonts.bold, g.TitleFontSize)
	title := "INVOICE"
	c.text(c.fonts.bold, (c.pageW-c.textWidth(c.fonts.bold, title))/2, mid+3*mm, title)

	rightEdge := c.pageW - g.MarginRight
	if c.secondary != "" {
		c.drawImageFit(c.secondary, rightEdge-g.LogoWidth, logoTop, g.LogoWidth, g.LogoHeight)
	} else if name := c.inv.Settings.BusinessName; name != "" {
		c.setFont(c.fonts.bold, g.LabelFontSize+2)
		c.text(c.fonts.bold, rightEdge-c.textWidth(c.fonts.bold, name), mid-1*mm, name)
		if owner := c.inv.Settings.Owner; owner != "" {
			c.setFont(c.fonts.regular, g.LabelFontSize)
			c.text(c.fonts.regular, rightEdge-c.textWidth(c.fonts.regular, owner), mid+3.5*mm, owner)
		}
	}

	ruleY := g.MarginTop + g.HeaderHeight
	c.doc.SetLineWidth(1.0)
	c.doc.Line(g.MarginLeft, ruleY, rightEdge, ruleY)
	c.doc.SetLineWidth(gridLineWidth)
	return ruleY
}

// drawDocumentInfo draws the number and date right-aligned under the header
// rule, sharing its top offset with the recipient block.
func (c *composer) drawDocumentInfo(ruleY float64) float64 {
	g := c.geom
	rightEdge := c.pageW - g.MarginRight
	c.setFont(c.fonts.regular, g.LabelFontSize)
	y := ruleY + 6*mm
	number := "Invoice No: " + c.inv.Header.Number
	c.text(c.fonts.regular, rightEdge-c.textWidth(c.fonts.regular, number), y, number)
	y += lineStep
	date := "Date: " + invoice.FormatDate(c.inv.Header.IssueDate)
	c.text(c.fonts.regular, rightEdge-c.textWidth(c.fonts.regular, date), y, date)
	return y + 2*mm
}

// drawRecipient draws the BILL TO block: name, phone, then the address with
// each physical line word-wrapped to half the content width.
func (c *composer) drawRecipient(ruleY float64) float64 {
	g := c.geom
	x := g.MarginLeft
	blockWidth := c.contentWidth() / 2
	y := ruleY + 6*mm
	c.setFont(c.fonts.regular, g.LabelFontSize)
	c.text(c.fonts.regular, x, y, "BILL TO")
	y += 5 * mm

	c.setFont(c.fonts.regular, g.TextFontSize)
	if name := c.inv.Party.Name; name != "" {
		c.text(c.fonts.regular, x, y, name)
		y += lineStep
	}
	if phone := c.inv.Party.Phone; phone != "" {
		c.text(c.fonts.regular, x, y, phone)
		y += lineStep
	}
	for _, raw := range strings.Split(c.inv.Party.Address, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		for _, line := range wrapText(raw, blockWidth, c.measureText) {
			c.text(c.fonts.regular, x, y, line)
			y += lineStep
		}
	}
	return y + 2*mm
}

// composePage draws every item in items as a single table starting at
// tableTop. When withSummary is set it runs the two-pass layout: probe the
// natural table height, size the filler row to close the gap to the footer
// region, and rebuild before drawing. Splitting items across pages is the
// pagination controller's decision, never this function's.
func (c *composer) composePage(items []invoice.LineItem, startSerial int, withSummary bool, tableTop float64) float64 {
	spec := tableSpec{
		items:        items,
		startSerial:  startSerial,
		total:        c.total,
		closing:      c.inv.Settings.ClosingLine(),
		withSummary:  withSummary,
		contentWidth: c.contentWidth(),
		geom:         c.geom,
		measure:      c.measureText,
	}
	if withSummary {
		probe := buildTable(spec)
		desired := c.footerTop() - c.geom.FooterGap - tableTop
		filler := desired - probe.height()
		if limit := c.maxFiller(); filler > limit {
			filler = limit
		}
		if filler > 0 {
			spec.fillerHeight = filler
		}
	}
	model := buildTable(spec)
	return drawTable(c.doc, c.fonts, model, c.geom.MarginLeft, tableTop)
}

func (c *composer) maxFiller() float64 {
	if c.geom.MaxFillerHeight > 0 {
		return c.geom.MaxFillerHeight
	}
	return (c.pageH - c.geom.MarginTop - c.geom.MarginBottom) / 2
}

// footerTop is the y where the final-page footer region begins.
func (c *composer) footerTop() float64 {
	return c.pageH - c.geom.MarginBottom - c.footerHeight()
}

func (c *composer) footerHeight() float64 {
	var textH float64
	if n := len(c.footerTextLines()); n > 0 {
		textH = footerInset + footerLineGap*float64(n)
	}
	return math.Max(textH, c.geom.SignBoxHeight)
}

func (c *composer) footerTextLines() []string {
	s := c.inv.Settings
	var lines []string
	if s.Permit != "" {
		lines = append(lines, "Permit No: "+s.Permit)
	}
	if s.TaxID != "" {
		lines = append(lines, "PAN No: "+s.TaxID)
	}
	if s.PayeeName != "" {
		lines = append(lines,
			"Please issue the Cheque in the Name of:",
			strings.ToUpper(s.PayeeName))
	}
	if s.Phone != "" {
		lines = append(lines, "Mobile No: "+s.Phone)
	}
	return lines
}

// drawFooter draws the business lines bottom-left and the authorized
// signatory box bottom-right. Final page only.
func (c *composer) drawFooter() {
	g := c.geom
	bottom := c.pageH - g.MarginBottom

	lines := c.footerTextLines()
	if len(lines) > 0 {
		c.setFont(c.fonts.regular, g.SmallFontSize)
		y := bottom - footerInset - footerLineGap*float64(len(lines)-1)
		for _, line := range lines {
			c.text(c.fonts.regular, g.MarginLeft, y, line)
			y += footerLineGap
		}
	}

	boxX := c.pageW - g.MarginRight - g.SignBoxWidth
	boxY := bottom - g.SignBoxHeight
	c.doc.SetLineWidth(0.7)
	c.doc.Rect(boxX, boxY, g.SignBoxWidth, g.SignBoxHeight, "D")
	c.doc.SetLineWidth(gridLineWidth)
	if c.signature != "" {
		c.drawImageFit(c.signature, boxX+4, boxY+3, g.SignBoxWidth-8, g.SignBoxHeight-12)
	}
	c.setFont(c.fonts.regular, g.SmallFontSize)
	if owner := c.inv.Settings.Owner; owner != "" {
		c.text(c.fonts.regular, boxX+(g.SignBoxWidth-c.textWidth(c.fonts.regular, owner))/2, boxY+g.SignBoxHeight/2-5, owner)
	}
	label := "Authorized Signatory"
	c.text(c.fonts.regular, boxX+(g.SignBoxWidth-c.textWidth(c.fonts.regular, label))/2, boxY+g.SignBoxHeight-4, label)
}

// drawImageFit draws the image scaled to fit the box, centered, preserving
// aspect ratio. A file gofpdf rejects is skipped rather than failing the
// render.
func (c *composer) drawImageFit(path string, x, y, maxW, maxH float64) {
	opts := gofpdf.ImageOptions{ImageType: imageTypeForPath(path), ReadDpi: true}
	info := c.doc.RegisterImageOptions(path, opts)
	if c.doc.Err() {
		c.doc.ClearError()
		return
	}
	w, h := info.Extent()
	if w <= 0 || h <= 0 {
		return
	}
	scale := math.Min(maxW/w, maxH/h)
	if scale > 1 {
		scale = 1
	}
	w *= scale
	h *= scale
	c.doc.ImageOptions(path, x+(maxW-w)/2, y+(maxH-h)/2, w, h, false, opts, 0, "")
}
