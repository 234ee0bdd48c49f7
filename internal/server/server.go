package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/export"
	"github.com/joseph-ayodele/cardscan/internal/importer"
	"github.com/joseph-ayodele/cardscan/internal/merge"
	"github.com/joseph-ayodele/cardscan/internal/pipeline"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Server wires the HTTP surface to the extraction core. Handlers only
// decode, delegate and encode.
type Server struct {
	cfg       *common.Config
	logger    *slog.Logger
	contacts  repository.ContactRepository
	processor *pipeline.Processor
	merger    *merge.Resolver
	exporter  *export.Service
	importer  *importer.Service
}

func NewServer(
	cfg *common.Config,
	logger *slog.Logger,
	contacts repository.ContactRepository,
	processor *pipeline.Processor,
	merger *merge.Resolver,
	exporter *export.Service,
	imp *importer.Service,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		contacts:  contacts,
		processor: processor,
		merger:    merger,
		exporter:  exporter,
		importer:  imp,
	}
}

// SetupRouter builds the gin engine with all routes registered.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/healthz", s.Healthz)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/extract", s.ExtractImage)
		v1.POST("/extract/text", s.ExtractText)

		v1.GET("/contacts", s.ListContacts)
		v1.POST("/contacts", s.SaveContact)
		v1.GET("/contacts/:id", s.GetContact)
		v1.PUT("/contacts/:id", s.UpdateContact)
		v1.DELETE("/contacts/:id", s.DeleteContact)
		v1.POST("/contacts/check-duplicates", s.CheckDuplicates)
		v1.POST("/contacts/merge", s.MergeContacts)

		v1.GET("/export/csv", s.ExportCSV)
		v1.GET("/export/xlsx", s.ExportXLSX)
		v1.GET("/import/template", s.ImportTemplate)
		v1.POST("/import/csv", s.ImportCSV)
		v1.POST("/import/json", s.ImportJSON)
	}
	return r
}

// requestID tags every request with an id for log correlation.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
