// Package documents validates uploaded files before they are forwarded.
package documents

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// ErrInvalidUpload indicates a missing, empty, oversized or non-PDF file.
var ErrInvalidUpload = errors.New("invalid upload")

const pdfMIME = "application/pdf"

// ValidatePDF checks the document by content, not by extension or the
// client-declared content type. The filename is normalised to end in .pdf.
func ValidatePDF(doc *models.Document, maxBytes int64) error {
	if doc == nil || len(doc.Content) == 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	}

	if maxBytes > 0 && int64(len(doc.Content)) > maxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, maxBytes)
	}

	if mt := mimetype.Detect(doc.Content); !mt.Is(pdfMIME) {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidUpload, pdfMIME, mt.String())
	}

	name := filepath.Base(strings.TrimSpace(doc.Filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "documento.pdf"
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	doc.Filename = name

	return nil
}
