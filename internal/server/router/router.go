package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// TokenDecoder turns an Authorization header into a caller.
type TokenDecoder interface {
	Decode(raw string) (auth.Principal, error)
}

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Dashboard *handlers.DashboardHandler
	Records   *handlers.RecordsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, decoder TokenDecoder, maxUploadBytes int64, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// Multipart bodies beyond this spill to temp files instead of memory.
	r.MaxMultipartMemory = maxUploadBytes + 1<<20
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", authMiddleware(decoder, logger))
	api.GET("/dashboard", h.Dashboard.Get)
	api.GET("/dashboard/latest", h.Dashboard.Latest)
	api.GET("/reports", h.Dashboard.History)
	api.GET("/shipments", h.Records.ListShipments)
	api.GET("/quotations", h.Records.ListQuotations)
	api.POST("/quotations", h.Records.CreateQuotation)
	api.GET("/leads", h.Records.ListLeads)
	api.POST("/leads", h.Records.CreateLead)
	api.PATCH("/leads/:id/comment", h.Records.UpdateLeadComment)
	api.GET("/me", h.Records.Me)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func authMiddleware(decoder TokenDecoder, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		p, err := decoder.Decode(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("rejected bearer token",
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(handlers.PrincipalKey, p)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
