package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/cardscan/internal/export"
)

func (s *Server) ExportCSV(c *gin.Context) {
	data, err := s.exporter.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	name := "contacts_export_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) ExportXLSX(c *gin.Context) {
	data, err := s.exporter.ExportXLSX(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	name := "contacts_export_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) ImportTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="contacts_template.csv"`)
	c.Data(http.StatusOK, "text/csv", export.ImportTemplate())
}

func (s *Server) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv file is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	result, err := s.importer.ImportCSV(c.Request.Context(), f, skipDuplicatesParam(c))
	if err != nil {
		s.logger.Error("import.csv.failed", "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) ImportJSON(c *gin.Context) {
	result, err := s.importer.ImportJSON(c.Request.Context(), c.Request.Body, skipDuplicatesParam(c))
	if err != nil {
		s.logger.Error("import.json.failed", "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// skipDuplicatesParam defaults to true, matching the import contract.
func skipDuplicatesParam(c *gin.Context) bool {
	raw := c.DefaultQuery("skip_duplicates", "true")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}
