// Package loader reads source documents and extracts page-level text.
package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
)

// PDFLoader extracts text from a PDF file, one entry per page.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader { return &PDFLoader{} }

// Load opens the PDF and extracts plain text per page. Pages that yield no
// text are kept with empty content so page numbers stay aligned.
func (l *PDFLoader) Load(path string) (domain.Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return domain.Document{}, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	doc := domain.Document{ID: hashString(path), Path: path}
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return domain.Document{}, fmt.Errorf("extracting page %d of %s: %w", i, path, err)
		}
		doc.Pages = append(doc.Pages, domain.Page{Number: i, Text: text})
	}
	return doc, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
