package pdf

// mm converts millimetres to PDF points.
const mm = 72.0 / 25.4

// Geometry is the page and grid configuration for one render call. It is a
// plain value: nothing in this package keeps layout state between calls, so
// concurrent renders with their own Geometry never interfere.
type Geometry struct {
	PageSize string

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	HeaderHeight float64
	LogoWidth    float64
	LogoHeight   float64

	// Fixed column widths. The description column absorbs whatever remains
	// of the content width, floored at MinDescWidth.
	SerialWidth  float64
	QtyWidth     float64
	RateWidth    float64
	AmountWidth  float64
	MinDescWidth float64

	RowHeight       float64
	HeaderRowHeight float64
	TableTopGap     float64
	RowBottomGap    float64
	FooterGap       float64
	SignBoxWidth    float64
	SignBoxHeight   float64

	// MaxFillerHeight caps the invisible filler row so short documents do
	// not stretch the grid absurdly. Zero means half the page body height.
	MaxFillerHeight float64

	TitleFontSize float64
	LabelFontSize float64
	TextFontSize  float64
	SmallFontSize float64

	// FontFamily names the registered TTF faces. RegularFont and BoldFont
	// are TTF paths resolved through AssetDir; an absent face falls back to
	// the built-in Helvetica pair.
	FontFamily  string
	RegularFont string
	BoldFont    string
	AssetDir    string
}

// DefaultGeometry returns the baseline A4 configuration.
func DefaultGeometry() Geometry {
	return Geometry{
		PageSize:        "A4",
		MarginLeft:      15 * mm,
		MarginRight:     15 * mm,
		MarginTop:       18 * mm,
		MarginBottom:    18 * mm,
		HeaderHeight:    10 * mm,
		LogoWidth:       36 * mm,
		LogoHeight:      24 * mm,
		SerialWidth:     10 * mm,
		QtyWidth:        18 * mm,
		RateWidth:       24 * mm,
		AmountWidth:     26 * mm,
		MinDescWidth:    40 * mm,
		RowHeight:       6 * mm,
		HeaderRowHeight: 7 * mm,
		TableTopGap:     8 * mm,
		RowBottomGap:    4 * mm,
		FooterGap:       6 * mm,
		SignBoxWidth:    50 * mm,
		SignBoxHeight:   24 * mm,
		TitleFontSize:   25,
		LabelFontSize:   10,
		TextFontSize:    10,
		SmallFontSize:   9,
		FontFamily:      "InvoiceSans",
	}
}

func applyGeometry(dst *Geometry, src Geometry) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.MarginLeft > 0 {
		dst.MarginLeft = src.MarginLeft
	}
	if src.MarginRight > 0 {
		dst.MarginRight = src.MarginRight
	}
	if src.MarginTop > 0 {
		dst.MarginTop = src.MarginTop
	}
	if src.MarginBottom > 0 {
		dst.MarginBottom = src.MarginBottom
	}
	if src.HeaderHeight > 0 {
		dst.HeaderHeight = src.HeaderHeight
	}
	if src.LogoWidth > 0 {
		dst.LogoWidth = src.LogoWidth
	}
	if src.LogoHeight > 0 {
		dst.LogoHeight = src.LogoHeight
	}
	if src.SerialWidth > 0 {
		dst.SerialWidth = src.SerialWidth
	}
	if src.QtyWidth > 0 {
		dst.QtyWidth = src.QtyWidth
	}
	if src.RateWidth > 0 {
		dst.RateWidth = src.RateWidth
	}
	if src.AmountWidth > 0 {
		dst.AmountWidth = src.AmountWidth
	}
	if src.MinDescWidth > 0 {
		dst.MinDescWidth = src.MinDescWidth
	}
	if src.RowHeight > 0 {
		dst.RowHeight = src.RowHeight
	}
	if src.HeaderRowHeight > 0 {
		dst.HeaderRowHeight = src.HeaderRowHeight
	}
	if src.TableTopGap > 0 {
		dst.TableTopGap = src.TableTopGap
	}
	if src.RowBottomGap > 0 {
		dst.RowBottomGap = src.RowBottomGap
	}
	if src.FooterGap > 0 {
		dst.FooterGap = src.FooterGap
	}
	if src.SignBoxWidth > 0 {
		dst.SignBoxWidth = src.SignBoxWidth
	}
	if src.SignBoxHeight > 0 {
		dst.SignBoxHeight = src.SignBoxHeight
	}
	if src.MaxFillerHeight > 0 {
		dst.MaxFillerHeight = src.MaxFillerHeight
	}
	if src.TitleFontSize > 0 {
		dst.TitleFontSize = src.TitleFontSize
	}
	if src.LabelFontSize > 0 {
		dst.LabelFontSize = src.LabelFontSize
	}
	if src.TextFontSize > 0 {
		dst.TextFontSize = src.TextFontSize
	}
	if src.SmallFontSize > 0 {
		dst.SmallFontSize = src.SmallFontSize
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.RegularFont != "" {
		dst.RegularFont = src.RegularFont
	}
	if src.BoldFont != "" {
		dst.BoldFont = src.BoldFont
	}
	if src.AssetDir != "" {
		dst.AssetDir = src.AssetDir
	}
}
