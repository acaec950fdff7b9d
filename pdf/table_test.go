package pdf

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"pkt.systems/invoice"
)

func testItems() []invoice.LineItem {
	return []invoice.LineItem{
		invoice.NewLineItem("Electrical inspection", decimal.RequireFromString("2"), decimal.RequireFromString("150.00")),
		invoice.NewLineItem("Fuse replacement", decimal.RequireFromString("1"), decimal.RequireFromString("49.99")),
		invoice.NewLineItem("Cable run", decimal.RequireFromString("3"), decimal.RequireFromString("20.00")),
	}
}

func testSpec(items []invoice.LineItem) tableSpec {
	g := DefaultGeometry()
	return tableSpec{
		items:        items,
		startSerial:  1,
		total:        decimal.RequireFromString("409.99"),
		closing:      invoice.DefaultClosing,
		withSummary:  true,
		contentWidth: 180 * mm,
		geom:         g,
		measure:      runeMeasure,
	}
}

func TestColumnWidthsDescriptionAbsorbsRemainder(t *testing.T) {
	g := DefaultGeometry()
	content := 180 * mm
	cols := columnWidths(g, content)
	if len(cols) != 5 {
		t.Fatalf("got %d columns", len(cols))
	}
	fixed := g.SerialWidth + g.QtyWidth + g.RateWidth + g.AmountWidth
	if got, want := cols[1], content-fixed; got != want {
		t.Fatalf("desc width = %v, want %v", got, want)
	}
	var total float64
	for _, w := range cols {
		total += w
	}
	if math.Abs(total-content) > 1e-9 {
		t.Fatalf("columns sum to %v, want %v", total, content)
	}
}

func TestColumnWidthsFloorsDescription(t *testing.T) {
	g := DefaultGeometry()
	cols := columnWidths(g, 60*mm)
	if cols[1] != g.MinDescWidth {
		t.Fatalf("desc width = %v, want floor %v", cols[1], g.MinDescWidth)
	}
}

func TestBuildTableRowsAndSummary(t *testing.T) {
	items := testItems()
	m := buildTable(testSpec(items))

	// Header, one row per item, closing row, total row.
	if got, want := len(m.rows), 1+len(items)+2; got != want {
		t.Fatalf("got %d rows, want %d", got, want)
	}
	if !m.rows[0].heavyBottom {
		t.Fatalf("header row missing heavy bottom rule")
	}

	last := m.rows[len(m.rows)-1]
	if !last.heavyTop {
		t.Fatalf("total row missing heavy top rule")
	}
	if got := last.cells[4].lines[0]; got != "409.99" {
		t.Fatalf("total cell = %q", got)
	}
	if got := last.cells[3].lines[0]; got != "Total:" {
		t.Fatalf("total label = %q", got)
	}

	closing := m.rows[len(m.rows)-2]
	if got := closing.cells[1].lines[0]; got != invoice.DefaultClosing {
		t.Fatalf("closing cell = %q", got)
	}

	// Serial column counts from startSerial.
	if got := m.rows[1].cells[0].lines[0]; got != "1." {
		t.Fatalf("first serial = %q", got)
	}
	if got := m.rows[3].cells[0].lines[0]; got != "3." {
		t.Fatalf("third serial = %q", got)
	}
}

func TestBuildTableStartSerialOffset(t *testing.T) {
	spec := testSpec(testItems())
	spec.startSerial = 14
	spec.withSummary = false
	m := buildTable(spec)
	if got := m.rows[1].cells[0].lines[0]; got != "14." {
		t.Fatalf("first serial = %q", got)
	}
}

func TestBuildTableFillerRow(t *testing.T) {
	spec := testSpec(testItems())
	spec.fillerHeight = 75.0
	m := buildTable(spec)

	var filler *tableRow
	for i := range m.rows {
		if m.rows[i].filler {
			filler = &m.rows[i]
		}
	}
	if filler == nil {
		t.Fatalf("no filler row built")
	}
	if filler.height != 75.0 {
		t.Fatalf("filler height = %v", filler.height)
	}
	for _, cell := range filler.cells {
		if len(cell.lines) != 0 {
			t.Fatalf("filler row carries text: %q", cell.lines)
		}
	}
}

func TestBuildTableWrappedRowHeight(t *testing.T) {
	g := DefaultGeometry()
	long := strings.Repeat("word ", 40)
	spec := testSpec([]invoice.LineItem{
		invoice.NewLineItem(long, decimal.RequireFromString("1"), decimal.RequireFromString("5.00")),
	})
	m := buildTable(spec)
	row := m.rows[1]
	if got, want := len(row.cells[1].lines), 2; got != want {
		t.Fatalf("got %d description lines, want %d", got, want)
	}
	if got, want := row.height, 2*g.RowHeight; got != want {
		t.Fatalf("row height = %v, want %v", got, want)
	}
}

func TestBuildTableSingleRowForOversizedRun(t *testing.T) {
	// An unbroken 200-rune run truncates to one line, so the row stays at
	// one RowHeight.
	g := DefaultGeometry()
	spec := testSpec([]invoice.LineItem{
		invoice.NewLineItem(strings.Repeat("x", 200), decimal.RequireFromString("1"), decimal.RequireFromString("5.00")),
	})
	m := buildTable(spec)
	row := m.rows[1]
	if got := len(row.cells[1].lines); got != 1 {
		t.Fatalf("got %d lines, want 1", got)
	}
	if row.height != g.RowHeight {
		t.Fatalf("row height = %v, want %v", row.height, g.RowHeight)
	}
	if !strings.HasSuffix(row.cells[1].lines[0], ellipsis) {
		t.Fatalf("oversized run not truncated: %q", row.cells[1].lines[0])
	}
}

func TestDrawTableHeavyRuleOnFinalRow(t *testing.T) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	fonts := fontSet{
		regular: fontRef{family: "Helvetica", core: true},
		bold:    fontRef{family: "Helvetica", style: "B", core: true},
	}
	m := tableModel{
		colWidths:  []float64{40, 120},
		lineHeight: 17,
		rows: []tableRow{{
			height:      17,
			heavyBottom: true,
			cells: []tableCell{
				{lines: []string{"Sl."}, size: 10},
				{lines: []string{"Description"}, size: 10},
			},
		}},
	}
	drawTable(doc, fonts, m, 50, 100)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatal(err)
	}
	// heavyLineWidth serialized by gofpdf: the closing border of a table
	// ending in a heavyBottom row must be drawn heavy.
	if !bytes.Contains(buf.Bytes(), []byte("1.10 w")) {
		t.Fatalf("heavy bottom rule missing from content stream")
	}
}

func TestTableModelHeight(t *testing.T) {
	m := tableModel{rows: []tableRow{{height: 10}, {height: 12.5}, {height: 6}}}
	if got := m.height(); got != 28.5 {
		t.Fatalf("height = %v", got)
	}
}
