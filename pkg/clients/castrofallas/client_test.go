package castrofallas

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestListShipments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/TransInternacional", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("numFilter"))
		assert.Equal(t, "acme", r.URL.Query().Get("textFilter"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"isSuccess":true,"message":"ok","data":{"value":[
			{"id":"1","new_preestado2":1,"new_eta":null,"new_poe":3}
		]}}`)
	})

	records, err := client.ListShipments(context.Background(), models.Filter{NumFilter: 2, TextFilter: "acme"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, models.Code("3"), records[0].POE)
}

func TestListQuotations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Cotizacion", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("numFilter"))
		_, _ = io.WriteString(w, `{"isSuccess":true,"data":{"value":[{"quo":"Q-1","cliente":"Acme","maritimo":true}]}}`)
	})

	quotes, err := client.ListQuotations(context.Background(), models.Filter{})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Q-1", quotes[0].Quo)
	assert.True(t, quotes[0].Maritime)
}

func TestFailuresCollapseIntoOneError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "application failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"isSuccess":false,"message":"sin datos"}`)
			},
		},
		{
			name: "http status failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `<html>`)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			_, err := client.ListShipments(context.Background(), models.Filter{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRequestFailed)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := NewClient(config.APIConfig{BaseURL: url, Timeout: time.Second})
		_, err := client.ListQuotations(context.Background(), models.Filter{})
		assert.ErrorIs(t, err, ErrRequestFailed)
	})
}

func TestCreateQuotation_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/Cotizacion/Agregar", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Q-77", r.FormValue("Quo"))
		assert.Equal(t, "Acme", r.FormValue("Cliente"))
		assert.Equal(t, "1", r.FormValue("Estado"))

		file, header, err := r.FormFile("Cotizacion")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "quote.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(body))

		_, _ = io.WriteString(w, `{"isSuccess":true,"data":true}`)
	})

	err := client.CreateQuotation(context.Background(), models.NewQuotation{
		Quo:      "Q-77",
		Client:   "Acme",
		Document: models.Document{Filename: "quote.pdf", Content: []byte("%PDF-1.4")},
	})
	require.NoError(t, err)
}

func TestCreateLead_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/TransInternacional/Agregar", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Acme", r.FormValue("Cliente"))
		assert.Equal(t, "40HC to Limon", r.FormValue("Detalle"))
		_, _, err := r.FormFile("Documento")
		require.NoError(t, err)

		_, _ = io.WriteString(w, `{"isSuccess":false,"message":"duplicado"}`)
	})

	err := client.CreateLead(context.Background(), models.NewLead{
		Client:   "Acme",
		Detail:   "40HC to Limon",
		Document: models.Document{Filename: "lead.pdf", Content: []byte("%PDF-1.7")},
	})
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "duplicado")
}

func TestUpdateLeadComment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/TransInternacional/Agregar", r.URL.Path)

		var body models.CommentUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.CommentUpdate{ID: "abc", Comment: "llamar mañana"}, body)

		_, _ = io.WriteString(w, `{"isSuccess":true,"data":{"value":[]}}`)
	})

	require.NoError(t, client.UpdateLeadComment(context.Background(), models.CommentUpdate{ID: "abc", Comment: "llamar mañana"}))
}
