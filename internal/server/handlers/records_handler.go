package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// ShipmentLister lists raw cargo records.
type ShipmentLister interface {
	ListShipments(ctx context.Context, filter models.Filter) ([]models.ShipmentRecord, error)
}

// QuotationService describes the quotation operations exposed over HTTP.
type QuotationService interface {
	List(ctx context.Context, p auth.Principal, filter models.Filter) ([]models.QuotationRecord, error)
	Create(ctx context.Context, p auth.Principal, q models.NewQuotation) error
}

// LeadService describes the lead operations exposed over HTTP.
type LeadService interface {
	List(ctx context.Context, filter models.Filter) ([]models.LeadRecord, error)
	Create(ctx context.Context, p auth.Principal, lead models.NewLead) error
	UpdateComment(ctx context.Context, p auth.Principal, id, comment string) error
}

// RecordsHandler serves the shipment, quotation and lead tables.
type RecordsHandler struct {
	shipments      ShipmentLister
	quotations     QuotationService
	leads          LeadService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter.
func NewRecordsHandler(shipments ShipmentLister, quotations QuotationService, leads LeadService, maxUploadBytes int64, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{
		shipments:      shipments,
		quotations:     quotations,
		leads:          leads,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ListShipments proxies the cargo table.
func (h *RecordsHandler) ListShipments(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.shipments.ListShipments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": nonNil(records)})
}

// ListQuotations returns the quotations visible to the caller.
func (h *RecordsHandler) ListQuotations(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	quotes, err := h.quotations.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": nonNil(quotes)})
}

// CreateQuotation accepts multipart fields quo, cliente and the cotizacion PDF.
func (h *RecordsHandler) CreateQuotation(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	doc, err := readDocument(c, "cotizacion", h.maxUploadBytes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	q := models.NewQuotation{
		Quo:      c.PostForm("quo"),
		Client:   c.PostForm("cliente"),
		Document: doc,
	}
	if err := h.quotations.Create(c.Request.Context(), principal(c), q); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Cotización agregada"})
}

// ListLeads returns shipment leads.
func (h *RecordsHandler) ListLeads(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.leads.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": nonNil(records)})
}

// CreateLead accepts multipart fields cliente, detalle and the file PDF.
func (h *RecordsHandler) CreateLead(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	doc, err := readDocument(c, "file", h.maxUploadBytes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	lead := models.NewLead{
		Client:   c.PostForm("cliente"),
		Detail:   c.PostForm("detalle"),
		Document: doc,
	}
	if err := h.leads.Create(c.Request.Context(), principal(c), lead); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lead agregado"})
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// UpdateLeadComment replaces the comment of lead :id.
func (h *RecordsHandler) UpdateLeadComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid comment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.leads.UpdateComment(c.Request.Context(), principal(c), c.Param("id"), req.Comment); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me echoes the caller's capabilities so the UI can toggle affordances.
func (h *RecordsHandler) Me(c *gin.Context) {
	p := principal(c)
	if p.Services == nil {
		p.Services = []models.ServiceCategory{}
	}
	c.JSON(http.StatusOK, gin.H{"principal": p, "admin": p.IsAdmin()})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
