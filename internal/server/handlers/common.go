package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/documents"
	"github.com/MauLang18/Cotizacion-CF/internal/service/leads"
	"github.com/MauLang18/Cotizacion-CF/internal/service/quotations"
	"github.com/MauLang18/Cotizacion-CF/pkg/clients/castrofallas"
)

// PrincipalKey is the gin context key holding the caller's auth.Principal.
const PrincipalKey = "principal"

var errBadFilter = errors.New("numFilter must be an integer")

// principal returns the caller set by the auth middleware, or the anonymous one.
func principal(c *gin.Context) auth.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}

// requireAdmin rejects non-admin callers before any upload is read. The
// services check again; this only avoids buffering bodies that will be refused.
func requireAdmin(c *gin.Context) bool {
	if principal(c).IsAdmin() {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "operation not allowed"})
	return false
}

func parseFilter(c *gin.Context) (models.Filter, error) {
	filter := models.Filter{TextFilter: c.Query("textFilter")}
	if raw := c.Query("numFilter"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Filter{}, errBadFilter
		}
		filter.NumFilter = n
	}
	return filter, nil
}

// readDocument loads a multipart file field, reading at most maxBytes+1 bytes
// so oversize uploads are detected without buffering them whole.
func readDocument(c *gin.Context, field string, maxBytes int64) (models.Document, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: missing file field %s", documents.ErrInvalidUpload, field)
	}

	f, err := header.Open()
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", documents.ErrInvalidUpload, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", documents.ErrInvalidUpload, err)
	}

	return models.Document{Filename: header.Filename, Content: content}, nil
}

// respondError maps service errors to HTTP statuses. Every remote API failure
// becomes the same generic 502 so the UI shows a single notification.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, quotations.ErrForbidden), errors.Is(err, leads.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not allowed"})
	case errors.Is(err, errBadFilter),
		errors.Is(err, documents.ErrInvalidUpload),
		errors.Is(err, quotations.ErrInvalidArguments),
		errors.Is(err, leads.ErrInvalidArguments):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, castrofallas.ErrRequestFailed):
		logger.Warn("remote api request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "no se pudo completar la solicitud"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
