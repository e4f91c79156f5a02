package models

// LeadRecord is the leads view of a /api/TransInternacional row. It shares the
// collection's field names with ShipmentRecord.
type LeadRecord struct {
	ID        string `json:"id"`
	Client    Code   `json:"_customerid_value"`
	Detail    string `json:"new_detalle"`
	Document  string `json:"new_documento"`
	Comment   string `json:"new_comentario"`
	CreatedAt string `json:"createdon,omitempty"`
}

// NewLead is the payload for creating a lead with its PDF.
type NewLead struct {
	Client   string
	Detail   string
	Document Document
}

// CommentUpdate is the JSON body for PATCH /api/TransInternacional/Agregar.
type CommentUpdate struct {
	ID      string `json:"id"`
	Comment string `json:"comentario"`
}

// Document is an uploaded file held in memory.
type Document struct {
	Filename string
	Content  []byte
}
