package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
)

// Dispatcher is the slice of the dispatch service the HTTP layer uses.
type Dispatcher interface {
	Dispatch(ctx context.Context, sig domain.SignalDescription, recipients []int64) (domain.DispatchResult, error)
	Broadcast(ctx context.Context, sig domain.SignalDescription) (domain.DispatchResult, error)
}

// Interactions is the slice of the interaction service the webhook uses.
type Interactions interface {
	Handle(ctx context.Context, origin domain.MessageRef, sessionKey string, t domain.Transition) error
}

// Pinger reports backing-store reachability for the health endpoint.
type Pinger func(ctx context.Context) error

type Handler struct {
	tracer       trace.Tracer
	dispatcher   Dispatcher
	interactions Interactions
	redisPing    Pinger
	postgresPing Pinger
}

func New(tracer trace.Tracer, dispatcher Dispatcher, interactions Interactions, redisPing, postgresPing Pinger) *Handler {
	return &Handler{
		tracer:       tracer,
		dispatcher:   dispatcher,
		interactions: interactions,
		redisPing:    redisPing,
		postgresPing: postgresPing,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/send-signal", h.SendSignal)
	r.POST("/telegram-webhook", h.TelegramWebhook)
}
