package models

// ServiceCategory names a line of business a quotation can belong to.
type ServiceCategory string

const (
	ServiceMaritime ServiceCategory = "maritimo"
	ServiceAir      ServiceCategory = "aereo"
	ServiceLand     ServiceCategory = "terrestre"
	ServiceCustoms  ServiceCategory = "aduanas"
)

// AllServiceCategories lists every known category.
var AllServiceCategories = []ServiceCategory{ServiceMaritime, ServiceAir, ServiceLand, ServiceCustoms}

// QuotationRecord is one row served by /api/Cotizacion.
type QuotationRecord struct {
	ID        int    `json:"id"`
	Quo       string `json:"quo"`
	Client    string `json:"cliente"`
	Document  string `json:"cotizacion"`
	State     int    `json:"estado"`
	Maritime  bool   `json:"maritimo"`
	Air       bool   `json:"aereo"`
	Land      bool   `json:"terrestre"`
	Customs   bool   `json:"aduanas"`
	CreatedAt string `json:"fechaCreacion,omitempty"`
}

// Categories returns the service categories flagged on the quotation.
func (q QuotationRecord) Categories() []ServiceCategory {
	var out []ServiceCategory
	if q.Maritime {
		out = append(out, ServiceMaritime)
	}
	if q.Air {
		out = append(out, ServiceAir)
	}
	if q.Land {
		out = append(out, ServiceLand)
	}
	if q.Customs {
		out = append(out, ServiceCustoms)
	}
	return out
}

// NewQuotation is the payload for creating a quotation with its PDF.
type NewQuotation struct {
	Quo      string
	Client   string
	Document Document
}
