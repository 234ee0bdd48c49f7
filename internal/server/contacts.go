package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/dedupe"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/extract"
)

func (s *Server) ListContacts(c *gin.Context) {
	contacts, err := s.contacts.ListContacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contacts"})
		return
	}
	if contacts == nil {
		contacts = []entity.Contact{}
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (s *Server) GetContact(c *gin.Context) {
	id, ok := s.contactID(c)
	if !ok {
		return
	}
	contact, err := s.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

type saveContactRequest struct {
	Card entity.Card `json:"card"`
	// Force persists even when duplicates exist; otherwise the handler
	// returns the duplicate report with HTTP 409 and stores nothing.
	Force bool `json:"force"`
}

func (s *Server) SaveContact(c *gin.Context) {
	var req saveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if msg, ok := validateCardValues(req.Card); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if !req.Force {
		contacts, err := s.contacts.ListContacts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "duplicate check failed"})
			return
		}
		report := dedupe.CheckDuplicates(req.Card, contacts)
		if report.HasDuplicates {
			c.JSON(http.StatusConflict, gin.H{"duplicates": report})
			return
		}
	}

	contact, err := s.processor.SaveCard(c.Request.Context(), req.Card)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save contact"})
		return
	}
	c.JSON(http.StatusCreated, contact)
}

type updateContactRequest struct {
	Card entity.Card `json:"card"`
}

func (s *Server) UpdateContact(c *gin.Context) {
	id, ok := s.contactID(c)
	if !ok {
		return
	}
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if msg, ok := validateCardValues(req.Card); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := s.contacts.Update(c.Request.Context(), id, entity.FromCard(req.Card)); err != nil {
		s.renderError(c, err)
		return
	}
	contact, err := s.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) DeleteContact(c *gin.Context) {
	id, ok := s.contactID(c)
	if !ok {
		return
	}
	if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type checkDuplicatesRequest struct {
	Card entity.Card `json:"card"`
}

func (s *Server) CheckDuplicates(c *gin.Context) {
	var req checkDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	contacts, err := s.contacts.ListContacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "duplicate check failed"})
		return
	}
	c.JSON(http.StatusOK, dedupe.CheckDuplicates(req.Card, contacts))
}

type mergeRequest struct {
	KeepID   int64 `json:"keep_id"`
	RemoveID int64 `json:"remove_id"`
}

func (s *Server) MergeContacts(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.KeepID == req.RemoveID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keep_id and remove_id must differ"})
		return
	}

	if err := s.merger.Merge(c.Request.Context(), req.KeepID, req.RemoveID); err != nil {
		if errors.Is(err, common.ErrPartialMerge) {
			// The surviving record is updated but the loser remains; the
			// caller must not retry blindly.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "partial": true})
			return
		}
		s.renderError(c, err)
		return
	}

	contact, err := s.contacts.GetByID(c.Request.Context(), req.KeepID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return 0, false
	}
	return id, true
}

func (s *Server) renderError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	s.logger.Error("request failed", "request_id", c.GetString("request_id"), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// validateCardValues rejects malformed phone/email/website tokens on manual
// saves and edits. OCR noise is tolerated at extraction time, not here.
func validateCardValues(card entity.Card) (string, bool) {
	for _, v := range card.Email {
		if !extract.ValidEmail(v) {
			return "invalid email: " + v, false
		}
	}
	for _, v := range card.Phone {
		if !extract.ValidPhone(v) {
			return "invalid phone: " + v, false
		}
	}
	for _, v := range card.Website {
		if !extract.ValidWebsite(v) {
			return "invalid website: " + v, false
		}
	}
	return "", true
}
