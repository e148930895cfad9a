package service

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
	"signal-relay/internal/render"
	"signal-relay/internal/session"
)

// Gateway is the slice of the messaging platform the services need.
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string, controls []domain.Control) (domain.MessageRef, error)
	EditMessage(ctx context.Context, ref domain.MessageRef, text string, controls []domain.Control) error
	SendImage(ctx context.Context, chatID int64, image []byte, caption string, controls []domain.Control) (domain.MessageRef, error)
	DeleteMessage(ctx context.Context, ref domain.MessageRef) error
}

// SubscriberDirectory lists the chats that opted into broadcast dispatch.
type SubscriberDirectory interface {
	ListSubscribers(ctx context.Context) ([]int64, error)
}

// DispatchService turns an inbound signal description into delivered chat
// messages and one session per delivered message.
type DispatchService struct {
	tracer    trace.Tracer
	gateway   Gateway
	sessions  session.Store
	directory SubscriberDirectory
}

func NewDispatchService(tracer trace.Tracer, gw Gateway, sessions session.Store, directory SubscriberDirectory) *DispatchService {
	return &DispatchService{
		tracer:    tracer,
		gateway:   gw,
		sessions:  sessions,
		directory: directory,
	}
}

// homeControls is the navigation keyboard of the signal view: one button
// per detail view. No back button here; the signal card is already home.
// With an empty sessionKey the receiver derives the key from the message
// the buttons are attached to.
func homeControls(sessionKey string) []domain.Control {
	return []domain.Control{
		{Label: "Market Sentiment \U0001F4CA", Data: domain.EncodeCallback(domain.TransitionSentiment, sessionKey)},
		{Label: "Technical Analysis \U0001F4C8", Data: domain.EncodeCallback(domain.TransitionTechnical, sessionKey)},
		{Label: "Economic Calendar \U0001F4C5", Data: domain.EncodeCallback(domain.TransitionCalendar, sessionKey)},
	}
}

func backControls(sessionKey string) []domain.Control {
	return []domain.Control{
		{Label: "« Back", Data: domain.EncodeCallback(domain.TransitionBack, sessionKey)},
	}
}

// Dispatch validates, renders and delivers a signal to each recipient.
// Recipient failures are isolated: one rejected send never aborts delivery
// to the rest, and the result reports a per-recipient outcome.
func (s *DispatchService) Dispatch(ctx context.Context, sig domain.SignalDescription, recipients []int64) (domain.DispatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "dispatch-service.dispatch")
	defer span.End()

	if err := sig.Validate(); err != nil {
		return domain.DispatchResult{}, err
	}
	if s.gateway == nil {
		return domain.DispatchResult{}, fmt.Errorf("%w: messaging gateway unavailable", domain.ErrDelivery)
	}

	sig = render.AdjustLevels(sig)
	text := render.Signal(sig)

	timeframe := sig.Timeframe
	if timeframe == "" {
		timeframe = domain.DefaultTimeframe
	}

	result := domain.DispatchResult{Outcomes: make([]domain.RecipientOutcome, 0, len(recipients))}
	for _, chatID := range recipients {
		ref, err := s.gateway.SendMessage(ctx, chatID, text, homeControls(""))
		if err != nil {
			log.Printf("dispatch: delivery to chat %d failed: %v", chatID, err)
			result.Outcomes = append(result.Outcomes, domain.RecipientOutcome{
				ChatID: chatID,
				Reason: "delivery failed",
			})
			continue
		}

		sess := domain.Session{
			Key:         ref.Key(),
			Instrument:  sig.Instrument,
			Timeframe:   timeframe,
			SignalText:  text,
			CurrentView: domain.ViewSignal,
		}
		if err := s.sessions.Create(ctx, sess); err != nil {
			log.Printf("dispatch: session create for %s failed: %v", sess.Key, err)
			result.Outcomes = append(result.Outcomes, domain.RecipientOutcome{
				ChatID: chatID,
				Reason: "session create failed",
			})
			continue
		}

		result.Outcomes = append(result.Outcomes, domain.RecipientOutcome{
			ChatID:     chatID,
			Delivered:  true,
			SessionKey: sess.Key,
		})
	}
	return result, nil
}

// Broadcast dispatches to every subscribed chat.
func (s *DispatchService) Broadcast(ctx context.Context, sig domain.SignalDescription) (domain.DispatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "dispatch-service.broadcast")
	defer span.End()

	if s.directory == nil {
		return domain.DispatchResult{}, fmt.Errorf("%w: subscriber directory unavailable", domain.ErrDelivery)
	}
	recipients, err := s.directory.ListSubscribers(ctx)
	if err != nil {
		return domain.DispatchResult{}, fmt.Errorf("%w: list subscribers: %v", domain.ErrDelivery, err)
	}
	return s.Dispatch(ctx, sig, recipients)
}
