package leads

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
var ErrInvalidArguments = errors.New("invalid lead arguments")

const maxCommentLength = 2000

// Gateway is the slice of the remote API the service needs.
type Gateway interface {
	ListLeads(ctx context.Context, filter models.Filter) ([]models.LeadRecord, error)
	CreateLead(ctx context.Context, lead models.NewLead) error
	UpdateLeadComment(ctx context.Context, update models.CommentUpdate) error
}

// Service manages shipment leads.
type Service struct {
	gateway        Gateway
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewService constructs a leads service.
func NewService(gateway Gateway, maxUploadBytes int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, maxUploadBytes: maxUploadBytes, logger: logger}
}

// List returns leads matching filter.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]models.LeadRecord, error) {
	if filter.NumFilter < 0 {
		return nil, fmt.Errorf("%w: numFilter %d", ErrInvalidArguments, filter.NumFilter)
	}
	filter.TextFilter = strings.TrimSpace(filter.TextFilter)

	leads, err := s.gateway.ListLeads(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// Create uploads a new lead document with its two free-text fields.
func (s *Service) Create(ctx context.Context, p auth.Principal, lead models.NewLead) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}

	lead.Client = strings.TrimSpace(lead.Client)
	lead.Detail = strings.TrimSpace(lead.Detail)
	if lead.Client == "" {
		return fmt.Errorf("%w: cliente is required", ErrInvalidArguments)
	}

	if err := documents.ValidatePDF(&lead.Document, s.maxUploadBytes); err != nil {
		return err
	}

	if err := s.gateway.CreateLead(ctx, lead); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}

	s.logger.Info("lead created", zap.String("cliente", lead.Client), zap.String("subject", p.Subject))
	return nil
}

// UpdateComment replaces the comment of an existing lead.
func (s *Service) UpdateComment(ctx context.Context, p auth.Principal, id, comment string) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidArguments)
	}
	if len(comment) > maxCommentLength {
		return fmt.Errorf("%w: comment longer than %d bytes", ErrInvalidArguments, maxCommentLength)
	}

	if err := s.gateway.UpdateLeadComment(ctx, models.CommentUpdate{ID: id, Comment: comment}); err != nil {
		return fmt.Errorf("update comment for lead %s: %w", id, err)
	}

	s.logger.Info("lead comment updated", zap.String("id", id), zap.String("subject", p.Subject))
	return nil
}
