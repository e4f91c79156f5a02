package quotations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/documents"
)

// ErrForbidden indicates the caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidArguments indicates a malformed request.
var ErrInvalidArguments = errors.New("invalid quotation arguments")

// Column selectors accepted as numFilter.
const (
	FilterAll    = 0
	FilterClient = 1
	FilterQuo    = 2
)

// Gateway is the slice of the remote API the service needs.
type Gateway interface {
	ListQuotations(ctx context.Context, filter models.Filter) ([]models.QuotationRecord, error)
	CreateQuotation(ctx context.Context, q models.NewQuotation) error
}

// Service lists and creates quotations on behalf of a principal.
type Service struct {
	gateway        Gateway
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewService constructs a quotations service.
func NewService(gateway Gateway, maxUploadBytes int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, maxUploadBytes: maxUploadBytes, logger: logger}
}

// List returns the quotations matching filter that the principal may see.
func (s *Service) List(ctx context.Context, p auth.Principal, filter models.Filter) ([]models.QuotationRecord, error) {
	if filter.NumFilter < FilterAll || filter.NumFilter > FilterQuo {
		return nil, fmt.Errorf("%w: numFilter %d", ErrInvalidArguments, filter.NumFilter)
	}
	filter.TextFilter = strings.TrimSpace(filter.TextFilter)

	all, err := s.gateway.ListQuotations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}

	visible := make([]models.QuotationRecord, 0, len(all))
	for _, q := range all {
		if p.CanView(q) {
			visible = append(visible, q)
		}
	}

	s.logger.Debug("quotations listed",
		zap.Int("num_filter", filter.NumFilter),
		zap.Int("fetched", len(all)),
		zap.Int("visible", len(visible)))

	return visible, nil
}

// Create uploads a new quotation. Only admins may create quotations.
func (s *Service) Create(ctx context.Context, p auth.Principal, q models.NewQuotation) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}

	q.Quo = strings.TrimSpace(q.Quo)
	q.Client = strings.TrimSpace(q.Client)
	if q.Quo == "" || q.Client == "" {
		return fmt.Errorf("%w: quo and cliente are required", ErrInvalidArguments)
	}

	if err := documents.ValidatePDF(&q.Document, s.maxUploadBytes); err != nil {
		return err
	}

	if err := s.gateway.CreateQuotation(ctx, q); err != nil {
		return fmt.Errorf("create quotation %s: %w", q.Quo, err)
	}

	s.logger.Info("quotation created", zap.String("quo", q.Quo), zap.String("subject", p.Subject))
	return nil
}
