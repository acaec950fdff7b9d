package invoice

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	previewSerialWidth = 4
	previewQtyWidth    = 8
	previewRateWidth   = 10
	previewAmountWidth = 12
	previewMinWidth    = 40
)

// Preview renders doc as an aligned plain-text table for terminal display.
// width is the total output width in cells; values below 40 fall back to 80.
// The PDF sink is authoritative for layout; this sink exists for quick
// inspection before printing.
func Preview(doc Document, width int) string {
	if width < previewMinWidth {
		width = 80
	}
	sep := "  "
	descWidth := width - previewSerialWidth - previewQtyWidth - previewRateWidth - previewAmountWidth - 4*len(sep)
	if descWidth < 10 {
		descWidth = 10
	}

	var b strings.Builder
	b.WriteString("INVOICE\n")
	if doc.Header.Number != "" {
		b.WriteString("Invoice No: " + doc.Header.Number + "\n")
	}
	if !doc.Header.IssueDate.IsZero() {
		b.WriteString("Date: " + FormatDate(doc.Header.IssueDate) + "\n")
	}
	b.WriteString("\n")

	if doc.Party.Name != "" || doc.Party.Phone != "" || doc.Party.Address != "" {
		b.WriteString("BILL TO\n")
		if doc.Party.Name != "" {
			b.WriteString(doc.Party.Name + "\n")
		}
		if doc.Party.Phone != "" {
			b.WriteString(doc.Party.Phone + "\n")
		}
		if addr := strings.TrimSpace(doc.Party.Address); addr != "" {
			b.WriteString(wordwrap.String(addr, width) + "\n")
		}
		b.WriteString("\n")
	}

	row := func(serial, desc, qty, rate, amount string) {
		b.WriteString(padRight(serial, previewSerialWidth))
		b.WriteString(sep)
		b.WriteString(padRight(truncateWithEllipsis(desc, descWidth), descWidth))
		b.WriteString(sep)
		b.WriteString(padLeft(qty, previewQtyWidth))
		b.WriteString(sep)
		b.WriteString(padLeft(rate, previewRateWidth))
		b.WriteString(sep)
		b.WriteString(padLeft(amount, previewAmountWidth))
		b.WriteString("\n")
	}

	rule := strings.Repeat("-", width)
	row("Sl.", "Description", "Qty", "Rate", "Amount")
	b.WriteString(rule + "\n")
	for i, it := range doc.Items {
		row(itemSerial(i+1), it.Description,
			FormatQuantity(it.Quantity),
			FormatMoney(it.UnitRate, 0),
			FormatMoney(it.Amount, 0))
	}
	b.WriteString(rule + "\n")
	row("", doc.Settings.ClosingLine(), "", "Total:", FormatMoney(doc.ComputedTotal(), 0))
	return b.String()
}

func itemSerial(n int) string {
	return strconv.Itoa(n) + "."
}
