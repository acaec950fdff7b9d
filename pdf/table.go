package pdf

import (
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"pkt.systems/invoice"
)

const (
	cellPadX       = 2.0
	baselineInset  = 5.0
	gridLineWidth  = 0.5
	heavyLineWidth = 1.1
)

type cellAlign int

const (
	alignLeft cellAlign = iota
	alignCenter
	alignRight
)

// tableCell is one cell of the laid-out grid. Lines are pre-wrapped by the
// shaper; a cell with no lines draws nothing but still gets its borders.
type tableCell struct {
	lines []string
	align cellAlign
	bold  bool
	size  float64
}

type tableRow struct {
	cells  []tableCell
	height float64
	// filler rows carry no text; they exist to extend the vertical grid
	// lines down to a target height.
	filler      bool
	heavyTop    bool
	heavyBottom bool
}

// tableModel is the measured layout of one page's table. Building it has no
// side effects, so pagination can probe heights without touching the
// drawing surface.
type tableModel struct {
	colWidths  []float64
	lineHeight float64
	rows       []tableRow
}

// height reports the natural height of the table: the probe measurement of
// the two-pass layout.
func (m tableModel) height() float64 {
	var h float64
	for _, r := range m.rows {
		h += r.height
	}
	return h
}

func (m tableModel) width() float64 {
	var w float64
	for _, cw := range m.colWidths {
		w += cw
	}
	return w
}

// tableSpec describes one page's table. items is the slice to draw in full;
// splitting across pages is the pagination controller's job, never the
// builder's.
type tableSpec struct {
	items        []invoice.LineItem
	startSerial  int
	total        decimal.Decimal
	closing      string
	withSummary  bool
	contentWidth float64
	fillerHeight float64
	geom         Geometry
	measure      measureFunc
}

// columnWidths returns the five column widths for the given content width.
// The four numeric columns are fixed; description absorbs the remainder.
func columnWidths(g Geometry, contentWidth float64) []float64 {
	fixed := g.SerialWidth + g.QtyWidth + g.RateWidth + g.AmountWidth
	desc := contentWidth - fixed
	if desc < g.MinDescWidth {
		desc = g.MinDescWidth
	}
	return []float64{g.SerialWidth, desc, g.QtyWidth, g.RateWidth, g.AmountWidth}
}

// buildTable lays out the header, item rows, optional filler row, and the
// closing/total summary rows. All numeric cell text goes through the money
// formatter so rounding policy stays centralized.
func buildTable(spec tableSpec) tableModel {
	g := spec.geom
	m := tableModel{
		colWidths:  columnWidths(g, spec.contentWidth),
		lineHeight: g.RowHeight,
	}

	m.rows = append(m.rows, tableRow{
		height:      g.HeaderRowHeight,
		heavyBottom: true,
		cells: []tableCell{
			{lines: []string{"Sl."}, bold: true, size: g.TextFontSize},
			{lines: []string{"Description"}, bold: true, size: g.TextFontSize},
			{lines: []string{"Qty"}, align: alignCenter, bold: true, size: g.TextFontSize},
			{lines: []string{"Rate"}, align: alignCenter, bold: true, size: g.TextFontSize},
			{lines: []string{"Amount"}, align: alignCenter, bold: true, size: g.TextFontSize},
		},
	})

	descWidth := m.colWidths[1] - 2*cellPadX
	for i, it := range spec.items {
		lines := wrapText(it.Description, descWidth, spec.measure)
		m.rows = append(m.rows, tableRow{
			height: float64(len(lines)) * g.RowHeight,
			cells: []tableCell{
				{lines: []string{strconv.Itoa(spec.startSerial+i) + "."}, size: g.TextFontSize},
				{lines: lines, size: g.TextFontSize},
				{lines: []string{invoice.FormatQuantity(it.Quantity)}, align: alignRight, size: g.TextFontSize},
				{lines: []string{invoice.FormatMoney(it.UnitRate, 0)}, align: alignRight, size: g.TextFontSize},
				{lines: []string{invoice.FormatMoney(it.Amount, 0)}, align: alignRight, size: g.TextFontSize},
			},
		})
	}

	if spec.fillerHeight > 0 {
		m.rows = append(m.rows, tableRow{
			height: spec.fillerHeight,
			filler: true,
			cells:  make([]tableCell, len(m.colWidths)),
		})
	}

	if spec.withSummary {
		m.rows = append(m.rows, tableRow{
			height: g.RowHeight,
			cells: []tableCell{
				{},
				{lines: []string{spec.closing}, size: g.TextFontSize},
				{}, {}, {},
			},
		})
		m.rows = append(m.rows, tableRow{
			height:   g.RowHeight,
			heavyTop: true,
			cells: []tableCell{
				{}, {}, {},
				{lines: []string{"Total:"}, align: alignRight, bold: true, size: g.TextFontSize + 1},
				{lines: []string{invoice.FormatMoney(spec.total, 0)}, align: alignRight, bold: true, size: g.TextFontSize + 1},
			},
		})
	}
	return m
}

// drawTable renders a measured table at (x, y) and returns the y below its
// bottom border. Uniform grid lines on all cells; heavier rules below the
// header and above the total row.
func drawTable(doc *gofpdf.Fpdf, fonts fontSet, m tableModel, x, y float64) float64 {
	doc.SetDrawColor(0, 0, 0)

	colX := make([]float64, len(m.colWidths)+1)
	colX[0] = x
	for i, w := range m.colWidths {
		colX[i+1] = colX[i] + w
	}
	right := colX[len(colX)-1]

	rule := func(ry float64, heavy bool) {
		if heavy {
			doc.SetLineWidth(heavyLineWidth)
		} else {
			doc.SetLineWidth(gridLineWidth)
		}
		doc.Line(x, ry, right, ry)
	}

	rowTop := y
	for i, row := range m.rows {
		rowBottom := rowTop + row.height
		heavy := row.heavyTop || (i > 0 && m.rows[i-1].heavyBottom)
		rule(rowTop, heavy)

		doc.SetLineWidth(gridLineWidth)
		for _, cx := range colX {
			doc.Line(cx, rowTop, cx, rowBottom)
		}

		if !row.filler {
			for ci, cell := range row.cells {
				drawCell(doc, fonts, cell, colX[ci], m.colWidths[ci], rowTop, rowBottom, m.lineHeight)
			}
		}
		rowTop = rowBottom
	}
	last := len(m.rows) - 1
	rule(rowTop, last >= 0 && m.rows[last].heavyBottom)
	return rowTop
}

func drawCell(doc *gofpdf.Fpdf, fonts fontSet, cell tableCell, left, width, top, bottom, lineHeight float64) {
	if len(cell.lines) == 0 {
		return
	}
	ref := fonts.regular
	if cell.bold {
		ref = fonts.bold
	}
	doc.SetFont(ref.family, ref.style, cell.size)
	for i, line := range cell.lines {
		if line == "" {
			continue
		}
		enc := fonts.encode(ref, line)
		// Single-line cells sit on the row baseline so numeric columns
		// align across one- and two-line rows; multi-line cells stack from
		// the top.
		baseY := bottom - baselineInset
		if len(cell.lines) > 1 {
			baseY = top + float64(i+1)*lineHeight - baselineInset
		}
		var tx float64
		switch cell.align {
		case alignRight:
			tx = left + width - cellPadX - doc.GetStringWidth(enc)
		case alignCenter:
			tx = left + (width-doc.GetStringWidth(enc))/2
		default:
			tx = left + cellPadX
		}
		doc.Text(tx, baseY, enc)
	}
}
