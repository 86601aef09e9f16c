package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitamed/backend/internal/chat"
)

type chatReq struct {
	Message string `json:"message" binding:"required"`
}

// Chat forwards the message to the assistant and returns the persisted
// exchange. Provider failures surface the upstream detail; nothing is
// retried and no fallback reply is produced.
func (h *Handler) Chat(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	exchange, err := h.ChatSvc.Converse(c.Request.Context(), uid, req.Message)
	if err != nil {
		log.Printf("[Chat] assistant call failed user=%s err=%v", uid, err)
		fail(c, http.StatusInternalServerError, "Asistan yanıt veremedi: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, exchange)
}

func (h *Handler) ChatHistory(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	history, err := h.ChatSvc.History(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}
	if history == nil {
		history = []chat.Exchange{}
	}

	c.JSON(http.StatusOK, history)
}
