// Package pdf renders an invoice document to a paginated, print-ready PDF.
//
// The engine is synchronous: one Render call lays out and writes one
// document, blocking the caller for its duration. Layout is driven entirely
// by an explicit Geometry value, so concurrent renders with separate
// geometries share no state.
//
// Layout is a two-pass, measure-then-place process. The table builder
// produces a pure tableModel whose height is known before anything is drawn;
// the page composer probes that height, sizes an invisible filler row to
// anchor the table bottom against the footer region, and only then draws.
// The pagination loop fits the widest prefix of remaining items per page and
// always makes forward progress or fails with ErrPageTooSmall.
//
// Example:
//
//	err := pdf.Render(pdf.RenderRequest{
//		Doc:    doc,
//		Writer: out,
//		Geometry: pdf.Geometry{
//			PageSize: "A4",
//			AssetDir: "assets",
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// RenderFile writes through a temporary file and renames on success, so a
// failed render never leaves a partial file at the final path.
package pdf
