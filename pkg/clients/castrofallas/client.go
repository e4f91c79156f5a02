package castrofallas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// ErrRequestFailed is returned for every failed call: transport errors, HTTP
// error statuses, undecodable bodies and isSuccess=false envelopes alike.
var ErrRequestFailed = errors.New("castro fallas api request failed")

const (
	shipmentsPath      = "/api/TransInternacional"
	shipmentsWritePath = "/api/TransInternacional/Agregar"
	quotationsPath     = "/api/Cotizacion"
	quotationsAddPath  = "/api/Cotizacion/Agregar"
)

// Client exposes the remote API operations used by the dashboard.
type Client interface {
	ListShipments(ctx context.Context, filter models.Filter) ([]models.ShipmentRecord, error)
	ListLeads(ctx context.Context, filter models.Filter) ([]models.LeadRecord, error)
	ListQuotations(ctx context.Context, filter models.Filter) ([]models.QuotationRecord, error)
	CreateQuotation(ctx context.Context, q models.NewQuotation) error
	CreateLead(ctx context.Context, lead models.NewLead) error
	UpdateLeadComment(ctx context.Context, update models.CommentUpdate) error
}

// APIClient is a resty-backed implementation of Client. Each call is a single
// request with no retries.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an API client using the provided configuration values.
func NewClient(cfg config.APIConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// ListShipments fetches cargo records.
func (c *APIClient) ListShipments(ctx context.Context, filter models.Filter) ([]models.ShipmentRecord, error) {
	return list[models.ShipmentRecord](ctx, c.httpClient, shipmentsPath, filter)
}

// ListLeads fetches the same collection as ListShipments, decoded as leads.
func (c *APIClient) ListLeads(ctx context.Context, filter models.Filter) ([]models.LeadRecord, error) {
	return list[models.LeadRecord](ctx, c.httpClient, shipmentsPath, filter)
}

// ListQuotations fetches quotation records.
func (c *APIClient) ListQuotations(ctx context.Context, filter models.Filter) ([]models.QuotationRecord, error) {
	return list[models.QuotationRecord](ctx, c.httpClient, quotationsPath, filter)
}

// CreateQuotation uploads a quotation PDF. New quotations always start in estado 1.
func (c *APIClient) CreateQuotation(ctx context.Context, q models.NewQuotation) error {
	req := c.httpClient.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"Quo":     q.Quo,
			"Cliente": q.Client,
			"Estado":  "1",
		}).
		SetFileReader("Cotizacion", q.Document.Filename, bytes.NewReader(q.Document.Content))

	resp, err := req.Post(quotationsAddPath)
	return check(resp, err, "create quotation")
}

// CreateLead uploads a lead PDF with its two free-text fields.
func (c *APIClient) CreateLead(ctx context.Context, lead models.NewLead) error {
	req := c.httpClient.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"Cliente": lead.Client,
			"Detalle": lead.Detail,
		}).
		SetFileReader("Documento", lead.Document.Filename, bytes.NewReader(lead.Document.Content))

	resp, err := req.Post(shipmentsWritePath)
	return check(resp, err, "create lead")
}

// UpdateLeadComment replaces the comment on a lead.
func (c *APIClient) UpdateLeadComment(ctx context.Context, update models.CommentUpdate) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch(shipmentsWritePath)
	return check(resp, err, "update lead comment")
}

func list[T any](ctx context.Context, client *resty.Client, path string, filter models.Filter) ([]T, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"numFilter":  strconv.Itoa(filter.NumFilter),
			"textFilter": filter.TextFilter,
		}).
		Get(path)

	env, err := decode[T](resp, err, "list "+path)
	if err != nil {
		return nil, err
	}
	return env.Data.Value, nil
}

// check validates write responses, whose data payload varies per endpoint.
func check(resp *resty.Response, err error, op string) error {
	if err := transportError(resp, err, op); err != nil {
		return err
	}

	var status models.Status
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return fmt.Errorf("%w: %s: decode envelope: %v", ErrRequestFailed, op, err)
	}
	if !status.IsSuccess {
		return fmt.Errorf("%w: %s: message=%s", ErrRequestFailed, op, status.Message)
	}
	return nil
}

func decode[T any](resp *resty.Response, err error, op string) (*models.Envelope[T], error) {
	if err := transportError(resp, err, op); err != nil {
		return nil, err
	}

	env := new(models.Envelope[T])
	if err := json.Unmarshal(resp.Body(), env); err != nil {
		return nil, fmt.Errorf("%w: %s: decode envelope: %v", ErrRequestFailed, op, err)
	}

	if !env.IsSuccess {
		return nil, fmt.Errorf("%w: %s: message=%s", ErrRequestFailed, op, env.Message)
	}

	return env, nil
}

func transportError(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequestFailed, op, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s: status=%d", ErrRequestFailed, op, resp.StatusCode())
	}
	return nil
}
