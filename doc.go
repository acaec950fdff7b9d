// Package invoice holds the invoice document model, exact money arithmetic,
// and a plain-text table sink for terminal preview.
//
// The model is value-based and read-only during rendering: a Document is
// assembled by the caller, validated, and handed to a sink such as the pdf
// subpackage. All monetary values use exact decimal arithmetic with
// round-half-to-even applied once at formatting time, never on intermediate
// sums.
//
// Example:
//
//	doc := invoice.Document{
//		Header: invoice.Header{Number: "KMC-0001", IssueDate: issued},
//		Party:  invoice.Party{Name: "Test Customer"},
//		Items: []invoice.LineItem{
//			invoice.NewLineItem("Wiring repair", qty, rate),
//		},
//	}
//	fmt.Print(invoice.Preview(doc, 80))
//
// For PDF output see pkt.systems/invoice/pdf; for persisted sequential
// invoice numbers see pkt.systems/invoice/numbering.
package invoice
