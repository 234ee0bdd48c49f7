package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/constants"
)

// ExtractImage accepts a multipart card image, runs the full pipeline and
// returns the classified card plus its duplicate report. Nothing is stored.
func (s *Server) ExtractImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	ext := filepath.Ext(file.Filename)
	if !constants.IsAllowedExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	// Stage the upload under the artifact cache dir for the OCR binary.
	dir := s.cfg.OCR.ArtifactCacheDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	tmpPath := filepath.Join(dir, "upload_"+uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("failed to remove staged upload", "path", tmpPath, "error", err)
		}
	}()

	result, err := s.processor.ProcessImage(c.Request.Context(), tmpPath)
	if err != nil {
		s.logger.Error("extract.image.failed", "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type extractTextRequest struct {
	Text string `json:"text"`
}

// ExtractText classifies already-recognized OCR text. Empty text is not an
// error; it yields an all-empty card.
func (s *Server) ExtractText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := s.processor.ProcessText(c.Request.Context(), req.Text)
	if err != nil {
		s.logger.Error("extract.text.failed", "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
