package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitamed/backend/internal/documents"
	"gorm.io/gorm"
)

type createDocumentReq struct {
	Title    string    `json:"title" binding:"required"`
	Type     string    `json:"type" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Notes    *string   `json:"notes"`
	FileData string    `json:"file_data" binding:"required"`
	FileType string    `json:"file_type" binding:"required"`
}

func (h *Handler) CreateDocument(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	var req createDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	doc := documents.Document{
		ID:        uuid.NewString(),
		UserID:    uid,
		Title:     req.Title,
		Type:      req.Type,
		Date:      req.Date,
		Notes:     req.Notes,
		FileData:  req.FileData,
		FileType:  req.FileType,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Docs.Create(c.Request.Context(), &doc); err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	docs, err := h.Docs.ListByUser(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}
	if docs == nil {
		docs = []documents.Document{}
	}

	c.JSON(http.StatusOK, docs)
}

func (h *Handler) GetDocument(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	doc, err := h.Docs.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// also covers documents owned by someone else
			fail(c, http.StatusNotFound, "Belge bulunamadı")
			return
		}
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	if err := h.Docs.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Belge bulunamadı")
			return
		}
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Belge silindi"})
}
