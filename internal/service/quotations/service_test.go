package quotations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/documents"
)

type fakeGateway struct {
	quotes     []models.QuotationRecord
	listErr    error
	lastFilter models.Filter
	created    []models.NewQuotation
}

func (f *fakeGateway) ListQuotations(_ context.Context, filter models.Filter) ([]models.QuotationRecord, error) {
	f.lastFilter = filter
	return f.quotes, f.listErr
}

func (f *fakeGateway) CreateQuotation(_ context.Context, q models.NewQuotation) error {
	f.created = append(f.created, q)
	return nil
}

var (
	admin  = auth.Principal{Role: "admin", Verified: true, Subject: "root"}
	viewer = auth.Principal{Role: "ventas", Verified: true, Services: []models.ServiceCategory{models.ServiceAir}}
	pdf    = []byte("%PDF-1.4\n%%EOF\n")
)

func TestList_FiltersByServiceCategory(t *testing.T) {
	gw := &fakeGateway{quotes: []models.QuotationRecord{
		{Quo: "Q-1", Maritime: true},
		{Quo: "Q-2", Air: true},
		{Quo: "Q-3"},
	}}
	svc := NewService(gw, 1<<20, nil)

	got, err := svc.List(context.Background(), viewer, models.Filter{NumFilter: FilterQuo, TextFilter: "  Q  "})
	require.NoError(t, err)
	assert.Equal(t, models.Filter{NumFilter: FilterQuo, TextFilter: "Q"}, gw.lastFilter)

	var quos []string
	for _, q := range got {
		quos = append(quos, q.Quo)
	}
	assert.Equal(t, []string{"Q-2", "Q-3"}, quos)

	all, err := svc.List(context.Background(), admin, models.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestList_Errors(t *testing.T) {
	svc := NewService(&fakeGateway{}, 0, nil)
	_, err := svc.List(context.Background(), admin, models.Filter{NumFilter: 9})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	boom := errors.New("boom")
	svc = NewService(&fakeGateway{listErr: boom}, 0, nil)
	_, err = svc.List(context.Background(), admin, models.Filter{})
	assert.ErrorIs(t, err, boom)
}

func TestCreate(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, 1<<20, nil)
	ctx := context.Background()

	valid := models.NewQuotation{Quo: " Q-9 ", Client: "Acme", Document: models.Document{Filename: "q9", Content: pdf}}

	assert.ErrorIs(t, svc.Create(ctx, viewer, valid), ErrForbidden)
	assert.ErrorIs(t, svc.Create(ctx, auth.Principal{Role: "admin"}, valid), ErrForbidden, "unverified admin")

	missing := valid
	missing.Client = ""
	assert.ErrorIs(t, svc.Create(ctx, admin, missing), ErrInvalidArguments)

	notPDF := valid
	notPDF.Document = models.Document{Filename: "q.pdf", Content: []byte("hello")}
	assert.ErrorIs(t, svc.Create(ctx, admin, notPDF), documents.ErrInvalidUpload)

	require.NoError(t, svc.Create(ctx, admin, valid))
	require.Len(t, gw.created, 1)
	assert.Equal(t, "Q-9", gw.created[0].Quo)
	assert.Equal(t, "q9.pdf", gw.created[0].Document.Filename)
}
