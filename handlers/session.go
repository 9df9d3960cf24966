package handlers

import (
	"net/http"

	"roombook/services/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the conversational booking flow.
type SessionHandler struct {
	Flow *session.Flow
}

func NewSessionHandler(flow *session.Flow) *SessionHandler {
	return &SessionHandler{Flow: flow}
}

// StartSessionHandler resets the user's session and returns the main menu.
func (h *SessionHandler) StartSessionHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	prompt, err := h.Flow.Start(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// SelectHandler applies one option selection.
func (h *SessionHandler) SelectHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Data string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	prompt, err := h.Flow.Handle(c.Request.Context(), userID, input.Data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}
