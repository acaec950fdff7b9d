// Command invoice renders an invoice JSON document to a print-ready PDF or
// a plain-text terminal preview.
//
// Usage:
//
//	invoice [flags] [input.json]
//
// If no input is given, the document is read from stdin. With --dsn set and
// no number in the input, the next sequential number is allocated from the
// shared counter database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/invoice"
	"pkt.systems/invoice/numbering"
	"pkt.systems/invoice/pdf"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/invoice")
}

func main() {
	var (
		outPath      string
		preview      bool
		widthFlag    int
		showVersion  bool
		pageSize     string
		assetDir     string
		logoPath     string
		signature    string
		regularFont  string
		boldFont     string
		dsn          string
		numberPrefix string
	)

	flags := pflag.NewFlagSet("invoice", pflag.ExitOnError)
	flags.StringVarP(&outPath, "output", "o", "", "Output PDF path (default: <number>.pdf)")
	flags.BoolVarP(&preview, "preview", "p", false, "Print a plain-text preview instead of writing a PDF")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Preview width (0 uses terminal width if available)")
	flags.StringVar(&pageSize, "page-size", "", "Page size (default A4)")
	flags.StringVar(&assetDir, "asset-dir", "", "Directory searched for logos, signatures and fonts")
	flags.StringVar(&logoPath, "logo", "", "Logo image path (overrides the document)")
	flags.StringVar(&signature, "signature", "", "Signature image path (overrides the document)")
	flags.StringVar(&regularFont, "regular-font", "", "TTF path for the regular face")
	flags.StringVar(&boldFont, "bold-font", "", "TTF path for the bold face")
	flags.StringVar(&dsn, "dsn", "", "Postgres DSN for the invoice number allocator")
	flags.StringVar(&numberPrefix, "prefix", "KMC-", "Invoice number prefix used with --dsn")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: invoice [flags] [input.json]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, the document is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}

	doc, err := readDocument(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	if logoPath != "" {
		doc.Settings.LogoPath = logoPath
	}
	if signature != "" {
		doc.Settings.SignaturePath = signature
	}
	if err := doc.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid document: %v\n", err)
		os.Exit(1)
	}

	if doc.Header.Number == "" && dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := numbering.Open(ctx, dsn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "allocate number: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		number, err := store.Next(ctx, numberPrefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "allocate number: %v\n", err)
			os.Exit(1)
		}
		doc.Header.Number = number
	}

	if preview {
		fmt.Print(invoice.Preview(doc, resolveWidth(widthFlag)))
		return
	}

	if outPath == "" {
		name := doc.Header.Number
		if name == "" {
			name = "invoice"
		}
		outPath = name + ".pdf"
	}
	err = pdf.RenderFile(outPath, doc, pdf.Geometry{
		PageSize:    pageSize,
		AssetDir:    assetDir,
		RegularFont: regularFont,
		BoldFont:    boldFont,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

type itemJSON struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount,omitempty"`
}

type partyJSON struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type businessJSON struct {
	Name          string `json:"name,omitempty"`
	Owner         string `json:"owner,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Permit        string `json:"permit,omitempty"`
	Pan           string `json:"pan,omitempty"`
	ChequeTo      string `json:"cheque_to,omitempty"`
	ThankYou      string `json:"thank_you,omitempty"`
	Logo          string `json:"logo,omitempty"`
	SecondaryLogo string `json:"secondary_logo,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

type documentJSON struct {
	Number   string       `json:"number,omitempty"`
	Date     string       `json:"date,omitempty"`
	Customer partyJSON    `json:"customer"`
	Items    []itemJSON   `json:"items"`
	Total    string       `json:"total,omitempty"`
	Business businessJSON `json:"business,omitempty"`
}

func readDocument(args []string) (invoice.Document, error) {
	var reader io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return invoice.Document{}, err
		}
		defer f.Close()
		reader = f
	}
	var wire documentJSON
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return invoice.Document{}, err
	}
	return buildDocument(wire)
}

func buildDocument(wire documentJSON) (invoice.Document, error) {
	doc := invoice.Document{
		Header: invoice.Header{Number: wire.Number},
		Party: invoice.Party{
			Name:    wire.Customer.Name,
			Phone:   wire.Customer.Phone,
			Address: wire.Customer.Address,
		},
		Total: invoice.ParseDecimal(wire.Total),
		Settings: invoice.Settings{
			BusinessName:  wire.Business.Name,
			Owner:         wire.Business.Owner,
			Phone:         wire.Business.Phone,
			Permit:        wire.Business.Permit,
			TaxID:         wire.Business.Pan,
			PayeeName:     wire.Business.ChequeTo,
			Closing:       wire.Business.ThankYou,
			LogoPath:      wire.Business.Logo,
			SecondaryLogo: wire.Business.SecondaryLogo,
			SignaturePath: wire.Business.Signature,
		},
	}
	if wire.Date != "" {
		t, err := parseDate(wire.Date)
		if err != nil {
			return invoice.Document{}, err
		}
		doc.Header.IssueDate = t
	} else {
		doc.Header.IssueDate = time.Now()
	}
	for _, it := range wire.Items {
		// Bad numeric input parses to zero so the row still renders.
		qty := invoice.ParseDecimal(it.Quantity)
		rate := invoice.ParseDecimal(it.Rate)
		item := invoice.NewLineItem(it.Description, qty, rate)
		if strings.TrimSpace(it.Amount) != "" {
			item.Amount = invoice.ParseDecimal(it.Amount)
		}
		doc.Items = append(doc.Items, item)
	}
	return doc, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want dd-mm-yyyy or yyyy-mm-dd)", s)
}

func resolveWidth(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
