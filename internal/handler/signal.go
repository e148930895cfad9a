package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"signal-relay/internal/domain"
)

type sendSignalRequest struct {
	SignalData signalData `json:"signal_data"`
	ChatID     *int64     `json:"chat_id,omitempty"`
	ChatIDs    []int64    `json:"chat_ids,omitempty"`
	Broadcast  bool       `json:"broadcast,omitempty"`
}

// signalData decodes the inbound payload permissively: field presence is
// validated by the dispatcher, not the decoder.
type signalData struct {
	Instrument string  `json:"instrument"`
	Direction  string  `json:"direction"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	RiskPips   float64 `json:"risk_pips"`
	Timeframe  string  `json:"timeframe"`
	Strategy   string  `json:"strategy"`
	AIVerdict  string  `json:"ai_verdict"`
	RiskReward float64 `json:"risk_reward"`
}

// SendSignal godoc
// @Summary      Dispatch a trading signal
// @Description  Renders the signal and delivers it to the given chats (or all subscribers with broadcast=true) with interactive view controls
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        request  body  sendSignalRequest  true  "Signal payload and recipients"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /send-signal [post]
func (h *Handler) SendSignal(c *gin.Context) {
	if h.dispatcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dispatch service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.send-signal")
	defer span.End()

	var req sendSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	direction, ok := domain.ParseDirection(req.SignalData.Direction)
	if !ok && strings.TrimSpace(req.SignalData.Direction) != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be buy or sell"})
		return
	}

	sig := domain.SignalDescription{
		Instrument: strings.ToUpper(strings.TrimSpace(req.SignalData.Instrument)),
		Direction:  direction,
		EntryPrice: req.SignalData.EntryPrice,
		StopLoss:   req.SignalData.StopLoss,
		TakeProfit: req.SignalData.TakeProfit,
		RiskPips:   req.SignalData.RiskPips,
		Timeframe:  strings.TrimSpace(req.SignalData.Timeframe),
		Strategy:   strings.TrimSpace(req.SignalData.Strategy),
		AIVerdict:  strings.TrimSpace(req.SignalData.AIVerdict),
		RiskReward: req.SignalData.RiskReward,
	}
	span.SetAttributes(attribute.String("instrument", sig.Instrument))

	recipients := req.ChatIDs
	if req.ChatID != nil {
		recipients = append(recipients, *req.ChatID)
	}

	var result domain.DispatchResult
	var err error
	switch {
	case req.Broadcast:
		result, err = h.dispatcher.Broadcast(ctx, sig)
	case len(recipients) > 0:
		result, err = h.dispatcher.Dispatch(ctx, sig, recipients)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id, chat_ids or broadcast required"})
		return
	}

	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dispatch failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"delivered": result.DeliveredCount(),
		"outcomes":  result.Outcomes,
	})
}
