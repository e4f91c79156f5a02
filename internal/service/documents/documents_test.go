package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func TestValidatePDF(t *testing.T) {
	t.Run("accepts pdf and normalises name", func(t *testing.T) {
		doc := &models.Document{Filename: "../../etc/cotizacion", Content: minimalPDF}
		require.NoError(t, ValidatePDF(doc, 1<<20))
		assert.Equal(t, "cotizacion.pdf", doc.Filename)
	})

	t.Run("keeps pdf extension", func(t *testing.T) {
		doc := &models.Document{Filename: "Q-1.PDF", Content: minimalPDF}
		require.NoError(t, ValidatePDF(doc, 0))
		assert.Equal(t, "Q-1.PDF", doc.Filename)
	})

	t.Run("empty name", func(t *testing.T) {
		doc := &models.Document{Content: minimalPDF}
		require.NoError(t, ValidatePDF(doc, 0))
		assert.Equal(t, "documento.pdf", doc.Filename)
	})

	tests := []struct {
		name string
		doc  *models.Document
		max  int64
	}{
		{name: "nil", doc: nil},
		{name: "empty", doc: &models.Document{Filename: "a.pdf"}},
		{name: "not a pdf", doc: &models.Document{Filename: "a.pdf", Content: []byte("PK\x03\x04 zip pretending")}},
		{name: "too large", doc: &models.Document{Filename: "a.pdf", Content: minimalPDF}, max: 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidatePDF(tc.doc, tc.max), ErrInvalidUpload)
		})
	}
}
