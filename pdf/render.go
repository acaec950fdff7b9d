package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"pkt.systems/invoice"
)

var (
	// ErrTotalMismatch reports a caller-supplied total that disagrees with
	// the recomputed item sum beyond rounding.
	ErrTotalMismatch = errors.New("supplied total disagrees with item sum")

	// ErrPageTooSmall reports a geometry whose page body cannot hold a
	// single item row plus the table header.
	ErrPageTooSmall = errors.New("page too small for a single row")
)

// RenderRequest contains inputs for one PDF render.
type RenderRequest struct {
	Doc      invoice.Document
	Writer   io.Writer
	Geometry Geometry
}

// Render lays out req.Doc and writes a complete PDF to req.Writer.
//
// The total is always recomputed from the items; a non-zero caller total
// that disagrees after rounding rejects with ErrTotalMismatch before any
// output is written. Missing fonts and images degrade (Helvetica fallback,
// skipped image); I/O failures are fatal.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("invoice pdf: writer is nil")
	}
	g := DefaultGeometry()
	applyGeometry(&g, req.Geometry)

	computed := req.Doc.ComputedTotal()
	if !req.Doc.Total.IsZero() && !invoice.Round2(req.Doc.Total).Equal(computed) {
		return fmt.Errorf("invoice pdf: supplied total %s, computed %s: %w",
			req.Doc.Total.StringFixed(2), computed.StringFixed(2), ErrTotalMismatch)
	}

	doc := gofpdf.New("P", "pt", g.PageSize, "")
	doc.SetMargins(g.MarginLeft, g.MarginTop, g.MarginRight)
	doc.SetAutoPageBreak(false, g.MarginBottom)
	doc.SetTitle("Invoice "+req.Doc.Header.Number, false)
	if name := req.Doc.Settings.BusinessName; name != "" {
		doc.SetAuthor(name, false)
	}
	fonts := registerFonts(doc, g)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(0, 0, 0)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("invoice pdf: font setup failed: %w", err)
	}

	c := newComposer(doc, g, fonts, req.Doc, computed)
	if err := c.run(); err != nil {
		return err
	}
	if err := doc.Output(req.Writer); err != nil {
		return fmt.Errorf("invoice pdf: output: %w", err)
	}
	return nil
}

// RenderFile renders doc to path through a temporary file in the target
// directory, renaming only after a complete write. A failed render never
// leaves a partial file at the final location.
func RenderFile(path string, doc invoice.Document, g Geometry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("invoice pdf: %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".invoice-*.pdf")
	if err != nil {
		return fmt.Errorf("invoice pdf: %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	done := false
	defer func() {
		if !done {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()
	if err := Render(RenderRequest{Doc: doc, Writer: tmp, Geometry: g}); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("invoice pdf: %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("invoice pdf: %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("invoice pdf: %s: %w", path, err)
	}
	done = true
	return nil
}
