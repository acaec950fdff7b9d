package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pkt.systems/invoice"
	"pkt.systems/invoice/pdf/internal/pdftext"
)

func testSettings() invoice.Settings {
	return invoice.Settings{
		BusinessName: "Kumar Maintenance Co",
		Owner:        "R. Kumar",
		Phone:        "9800000000",
		Permit:       "PMT-2231",
		TaxID:        "ABCDE1234F",
		PayeeName:    "Kumar Maintenance Co",
	}
}

func testDocument(items []invoice.LineItem) invoice.Document {
	return invoice.Document{
		Header: invoice.Header{
			Number:    "KMC-0001",
			IssueDate: time.Date(2025, time.August, 9, 0, 0, 0, 0, time.UTC),
		},
		Party: invoice.Party{
			Name:    "Asha Traders",
			Phone:   "9811111111",
			Address: "14 Market Road\nOld Town",
		},
		Items:    items,
		Settings: testSettings(),
	}
}

func render(t *testing.T, doc invoice.Document, g Geometry) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(RenderRequest{Doc: doc, Writer: &buf, Geometry: g}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.Bytes()
}

func TestRenderSinglePage(t *testing.T) {
	doc := testDocument(testItems())
	data := render(t, doc, Geometry{})

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if got := pdftext.Pages(data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}

	text := pdftext.Text(data)
	for _, want := range []string{
		"INVOICE",
		"Invoice No: KMC-0001",
		"Date: 09-08-2025",
		"BILL TO",
		"Asha Traders",
		"Electrical inspection",
		"300.00",
		"49.99",
		"Total: 409.99",
		invoice.DefaultClosing,
		"Permit No: PMT-2231",
		"PAN No: ABCDE1234F",
		"KUMAR MAINTENANCE CO",
		"Authorized Signatory",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
}

func TestRenderPaginatesLongDocument(t *testing.T) {
	items := make([]invoice.LineItem, 40)
	for i := range items {
		items[i] = invoice.NewLineItem(
			fmt.Sprintf("Service visit %02d", i+1),
			decimal.NewFromInt(1), decimal.RequireFromString("10.00"))
	}
	doc := testDocument(items)
	data := render(t, doc, Geometry{})

	pages := pdftext.PageTexts(data)
	if len(pages) < 2 {
		t.Fatalf("got %d pages, want at least 2", len(pages))
	}

	// Every item appears exactly once across the whole document, in order.
	text := pdftext.Text(data)
	prev := -1
	for i := range items {
		desc := fmt.Sprintf("Service visit %02d", i+1)
		if got := strings.Count(text, desc); got != 1 {
			t.Fatalf("%q appears %d times", desc, got)
		}
		at := strings.Index(text, desc)
		if at < prev {
			t.Fatalf("%q drawn out of order", desc)
		}
		prev = at
	}

	// The summary and footer draw only on the final page.
	for i, page := range pages {
		hasTotal := strings.Contains(page, "Total:")
		hasFooter := strings.Contains(page, "Authorized Signatory")
		if i == len(pages)-1 {
			if !hasTotal || !hasFooter {
				t.Fatalf("final page missing summary or footer")
			}
		} else if hasTotal || hasFooter {
			t.Fatalf("page %d carries summary or footer", i+1)
		}
		// Every page repeats the header block.
		if !strings.Contains(page, "Invoice No: KMC-0001") {
			t.Fatalf("page %d missing header", i+1)
		}
	}
}

func TestRenderTruncatesUnbrokenRun(t *testing.T) {
	run := strings.Repeat("x", 200)
	doc := testDocument([]invoice.LineItem{
		invoice.NewLineItem(run, decimal.NewFromInt(1), decimal.RequireFromString("5.00")),
	})
	data := render(t, doc, Geometry{})

	text := pdftext.Text(data)
	if strings.Contains(text, run) {
		t.Fatalf("full 200-rune run drawn without truncation")
	}
	if !strings.Contains(text, strings.Repeat("x", 20)) {
		t.Fatalf("truncated run prefix missing")
	}
	if got := pdftext.Pages(data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := testDocument(nil)
	data := render(t, doc, Geometry{})

	if got := pdftext.Pages(data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
	text := pdftext.Text(data)
	if !strings.Contains(text, "Total: 0.00") {
		t.Fatalf("empty document total missing:\n%s", text)
	}
	if !strings.Contains(text, "Description") {
		t.Fatalf("header row missing")
	}
}

func TestRenderRejectsMismatchedTotal(t *testing.T) {
	doc := testDocument(testItems())
	doc.Total = decimal.RequireFromString("500.00")
	err := Render(RenderRequest{Doc: doc, Writer: &bytes.Buffer{}})
	if !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("err = %v, want ErrTotalMismatch", err)
	}
}

func TestRenderAcceptsMatchingTotal(t *testing.T) {
	doc := testDocument(testItems())
	doc.Total = decimal.RequireFromString("409.99")
	if err := Render(RenderRequest{Doc: doc, Writer: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRenderNilWriter(t *testing.T) {
	if err := Render(RenderRequest{Doc: testDocument(nil)}); err == nil {
		t.Fatalf("nil writer accepted")
	}
}

func TestRenderPageTooSmall(t *testing.T) {
	doc := testDocument(testItems())
	err := Render(RenderRequest{
		Doc:      doc,
		Writer:   &bytes.Buffer{},
		Geometry: Geometry{MarginTop: 700, MarginBottom: 100},
	})
	if !errors.Is(err, ErrPageTooSmall) {
		t.Fatalf("err = %v, want ErrPageTooSmall", err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "KMC-0001.pdf")
	if err := RenderFile(path, testDocument(testItems()), Geometry{}); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestRenderFileLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "KMC-0001.pdf")
	doc := testDocument(testItems())
	doc.Total = decimal.RequireFromString("999.99")
	if err := RenderFile(path, doc, Geometry{}); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("err = %v, want ErrTotalMismatch", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial output left at %s", path)
	}
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".invoice-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
