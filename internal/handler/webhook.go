package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signal-relay/internal/domain"
)

// telegramUpdate decodes just the slice of Telegram's update envelope the
// relay consumes. The envelope is provider-owned and unstable; unknown
// fields are ignored and missing ones degrade to a no-op response.
type telegramUpdate struct {
	UpdateID      int64 `json:"update_id"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			MessageID int `json:"message_id"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
			Photo []struct {
				FileID string `json:"file_id"`
			} `json:"photo"`
		} `json:"message"`
	} `json:"callback_query"`
}

// TelegramWebhook godoc
// @Summary      Ingest a Telegram update
// @Description  Extracts a button-press event from the update envelope and drives the view state machine. Always answers 200 so Telegram does not retry.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /telegram-webhook [post]
func (h *Handler) TelegramWebhook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.telegram-webhook")
	defer span.End()

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		// Telegram retries non-2xx responses; a malformed body will not
		// improve on retry.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	cb := update.CallbackQuery
	if cb == nil || cb.Message == nil || h.interactions == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	transition, sessionKey, ok := domain.ParseCallback(cb.Data)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	origin := domain.MessageRef{
		ChatID:    cb.Message.Chat.ID,
		MessageID: cb.Message.MessageID,
		HasMedia:  len(cb.Message.Photo) > 0,
	}

	// Expired sessions and rejected transitions are fully user-handled by
	// the interaction service; the webhook acknowledges regardless.
	_ = h.interactions.Handle(ctx, origin, sessionKey, transition)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
