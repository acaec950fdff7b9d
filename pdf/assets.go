package pdf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// resolveAsset maps a logical asset reference to a filesystem path. Search
// order: the explicit path, then the configured asset directory, then
// absent. Missing assets are never fatal; callers skip them.
func resolveAsset(path, assetDir string) (string, bool) {
	if path == "" {
		return "", false
	}
	if fileExists(path) {
		return path, true
	}
	if assetDir != "" {
		p := filepath.Join(assetDir, path)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// resolveImage resolves a drawable image reference. References to
// unsupported formats resolve as absent.
func resolveImage(path, assetDir string) (string, bool) {
	p, ok := resolveAsset(path, assetDir)
	if !ok || imageTypeForPath(p) == "" {
		return "", false
	}
	return p, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func imageTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return ""
	}
}

// fontRef is a registered face: a gofpdf family plus style suffix. core
// marks the built-in fallback faces, which take cp1252 text rather than
// UTF-8.
type fontRef struct {
	family string
	style  string
	core   bool
}

// fontSet is the pair of faces a render uses. Missing-face policy is in the
// type: a face either resolved to a TTF or fell back to Helvetica.
type fontSet struct {
	regular   fontRef
	bold      fontRef
	translate func(string) string
}

// encode prepares s for drawing or measuring with the given face. Core
// faces go through the cp1252 translator so runes like the ellipsis keep
// their width and glyph.
func (f fontSet) encode(ref fontRef, s string) string {
	if ref.core && f.translate != nil {
		return f.translate(s)
	}
	return s
}

// registerFonts registers the configured TTF faces on doc. Each face falls
// back independently to the built-in Helvetica pair when its file is absent
// or rejected. Registration is per-document, so concurrent renders never
// share font state.
func registerFonts(doc *gofpdf.Fpdf, g Geometry) fontSet {
	fonts := fontSet{
		regular:   fontRef{family: "Helvetica", core: true},
		bold:      fontRef{family: "Helvetica", style: "B", core: true},
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
	family := g.FontFamily
	if family == "" {
		family = "InvoiceSans"
	}
	if p, ok := resolveFontFile(g.RegularFont, g.AssetDir); ok {
		doc.SetFontLocation(filepath.Dir(p))
		doc.AddUTF8Font(family, "", filepath.Base(p))
		if doc.Err() {
			doc.ClearError()
		} else {
			fonts.regular = fontRef{family: family}
		}
	}
	if p, ok := resolveFontFile(g.BoldFont, g.AssetDir); ok {
		doc.SetFontLocation(filepath.Dir(p))
		doc.AddUTF8Font(family, "B", filepath.Base(p))
		if doc.Err() {
			doc.ClearError()
		} else {
			fonts.bold = fontRef{family: family, style: "B"}
		}
	}
	return fonts
}

func resolveFontFile(path, assetDir string) (string, bool) {
	p, ok := resolveAsset(path, assetDir)
	if !ok || !strings.EqualFold(filepath.Ext(p), ".ttf") {
		return "", false
	}
	return p, true
}
