package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultClosing is used when Settings.Closing is empty.
const DefaultClosing = "Thank you for your business!"

// LineItem is one billable row of a Document. Amount is normally derived
// from Quantity and UnitRate; a caller-supplied Amount is trusted as-is.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitRate    decimal.Decimal
	Amount      decimal.Decimal
}

// NewLineItem derives the amount as round2(quantity * unitRate).
func NewLineItem(description string, quantity, unitRate decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitRate:    unitRate,
		Amount:      Round2(quantity.Mul(unitRate)),
	}
}

// Party is the recipient block. Address may span multiple lines.
type Party struct {
	Name    string
	Phone   string
	Address string
}

// Header identifies the document.
type Header struct {
	Number    string
	IssueDate time.Time
}

// Settings carries the optional business display fields. Image references
// are resolved by the rendering sink; an unresolvable reference is skipped,
// never fatal.
type Settings struct {
	BusinessName  string
	Owner         string
	Phone         string
	Permit        string
	TaxID         string
	PayeeName     string
	Closing       string
	LogoPath      string
	SecondaryLogo string
	SignaturePath string
}

// ClosingLine returns the configured closing message or DefaultClosing.
func (s Settings) ClosingLine() string {
	if s.Closing != "" {
		return s.Closing
	}
	return DefaultClosing
}

// Document is the root aggregate handed to a rendering sink. It is
// constructed once per render call and consumed read-only.
//
// Total is optional. Sinks recompute the total from the items and must not
// silently diverge from it: a non-zero Total that disagrees with the
// recomputed sum beyond rounding is surfaced as an error.
type Document struct {
	Header   Header
	Party    Party
	Items    []LineItem
	Total    decimal.Decimal
	Settings Settings
}

// ComputedTotal sums the item amounts exactly and rounds once.
func (d Document) ComputedTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(d.Items))
	for i, it := range d.Items {
		amounts[i] = it.Amount
	}
	return SumMoney(amounts)
}

// FormatDate renders an issue date as dd-mm-yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}
