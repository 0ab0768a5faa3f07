// Package document validates uploaded documents before they are stored.
package document

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

var pdfMagic = []byte("%PDF-")

// headerWindow is how far into the file the header may start.
const headerWindow = 1024

type PDFValidator struct{}

func NewPDFValidator() *PDFValidator {
	return &PDFValidator{}
}

// ValidatePDF accepts content only if it parses as a PDF with at least one page.
func (PDFValidator) ValidatePDF(content []byte) (err error) {
	window := content
	if limit := headerWindow + len(pdfMagic) - 1; len(window) > limit {
		window = window[:limit]
	}
	start := bytes.Index(window, pdfMagic)
	if start < 0 {
		return domain.ErrInvalidResume
	}
	// Cross-reference offsets count from the header, not from any leading bytes.
	content = content[start:]

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrInvalidResume, r)
		}
	}()

	reader, perr := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if perr != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResume, perr)
	}
	if reader.NumPage() < 1 {
		return fmt.Errorf("%w: no pages", domain.ErrInvalidResume)
	}
	return nil
}

var _ ports.DocumentValidator = PDFValidator{}
