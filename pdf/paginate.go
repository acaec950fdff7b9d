package pdf

import (
	"fmt"

	"pkt.systems/invoice"
)

// run is the pagination loop. Each iteration composes one page: fit the
// widest prefix of remaining items into the page body, draw it, and either
// finish with the summary and footer or break to a fresh page. Every page
// strictly reduces the remaining item count or the run fails, so the loop
// always terminates.
func (c *composer) run() error {
	items := c.inv.Items
	start := 0
	for {
		tableTop := c.beginPage()
		remaining := items[start:]
		heights := c.rowHeights(remaining)

		bodyBottom := c.pageH - c.geom.MarginBottom - c.geom.RowBottomGap
		avail := bodyBottom - tableTop - c.geom.HeaderRowHeight
		n := fitItems(heights, avail)
		if n == 0 && len(remaining) > 0 {
			// A fresh page could not hold even one item row. Retrying on
			// another identical page cannot help; descriptions are capped
			// at two lines, so only a pathological geometry gets here.
			return fmt.Errorf("invoice pdf: %w", ErrPageTooSmall)
		}

		withSummary := false
		if start+n == len(items) {
			// The summary draws on this page only if the closing and total
			// rows fit above the footer region in full; otherwise the last
			// items draw here and a final page break carries the summary.
			used := c.geom.HeaderRowHeight + sum(heights[:n])
			summaryBottom := c.footerTop() - c.geom.FooterGap
			withSummary = tableTop+used+2*c.geom.RowHeight <= summaryBottom
			if !withSummary && n == 0 {
				return fmt.Errorf("invoice pdf: %w", ErrPageTooSmall)
			}
		}

		c.composePage(items[start:start+n], start+1, withSummary, tableTop)
		start += n
		if withSummary {
			c.drawFooter()
			return c.doc.Error()
		}
	}
}

// rowHeights measures each remaining item's row height, wrapping its
// description against the description column width.
func (c *composer) rowHeights(items []invoice.LineItem) []float64 {
	descWidth := columnWidths(c.geom, c.contentWidth())[1] - 2*cellPadX
	heights := make([]float64, len(items))
	for i, it := range items {
		lines := wrapText(it.Description, descWidth, c.measureText)
		heights[i] = float64(len(lines)) * c.geom.RowHeight
	}
	return heights
}

// fitItems returns how many leading rows fit within avail.
func fitItems(heights []float64, avail float64) int {
	var used float64
	for i, h := range heights {
		if used+h > avail {
			return i
		}
		used += h
	}
	return len(heights)
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
