package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"signal-relay/internal/domain"
	"signal-relay/internal/render"
	"signal-relay/internal/session"
	"signal-relay/internal/view"
)

// User-visible copy is a small fixed set; internal error strings never
// reach the chat.
const (
	msgSessionExpired  = "This signal has expired. Please request a new signal to continue."
	msgLoading         = "⏳ Fetching the latest data..."
	msgProviderFailure = "Sorry, this analysis is unavailable right now. Please try again in a moment."
)

type ChartProvider interface {
	FetchChart(ctx context.Context, instrument, timeframe string) ([]byte, error)
}

type SentimentProvider interface {
	FetchSentiment(ctx context.Context, instrument string) (string, error)
}

type CalendarProvider interface {
	FetchCalendar(ctx context.Context, instrument, timeframe string) (string, error)
}

// InteractionService drives the view state machine for button presses on
// dispatched signal messages.
type InteractionService struct {
	tracer    trace.Tracer
	gateway   Gateway
	sessions  session.Store
	charts    ChartProvider
	sentiment SentimentProvider
	calendar  CalendarProvider

	locks        *session.KeyedMutex
	fetchTimeout time.Duration
}

func NewInteractionService(
	tracer trace.Tracer,
	gw Gateway,
	sessions session.Store,
	charts ChartProvider,
	sentiment SentimentProvider,
	calendar CalendarProvider,
	fetchTimeout time.Duration,
) *InteractionService {
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	return &InteractionService{
		tracer:       tracer,
		gateway:      gw,
		sessions:     sessions,
		charts:       charts,
		sentiment:    sentiment,
		calendar:     calendar,
		locks:        session.NewKeyedMutex(),
		fetchTimeout: fetchTimeout,
	}
}

// Handle processes one button press. origin is the message the button was
// attached to; sessionKey resolves the session (it equals origin.Key() for
// the original dispatch message, and is carried in the callback data for
// messages that replaced it, such as a chart photo).
//
// Error contract: domain.ErrSessionNotFound and domain.ErrInvalidTransition
// are returned for the caller to acknowledge appropriately; both leave the
// store untouched. Provider failures are fully handled here (friendly error
// view, currentView unchanged) and return nil.
func (s *InteractionService) Handle(ctx context.Context, origin domain.MessageRef, sessionKey string, t domain.Transition) error {
	ctx, span := s.tracer.Start(ctx, "interaction-service.handle",
		trace.WithAttributes(attribute.String("transition", string(t))))
	defer span.End()

	if s.gateway == nil {
		return fmt.Errorf("%w: messaging gateway unavailable", domain.ErrDelivery)
	}

	if sessionKey == "" {
		sessionKey = origin.Key()
	}

	unlock := s.locks.Lock(sessionKey)
	defer unlock()

	sess, err := s.sessions.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.showExpired(ctx, origin)
		}
		return err
	}

	next, err := view.Next(sess.CurrentView, t)
	if err != nil {
		return err
	}

	if next == domain.ViewSignal {
		// Back always re-renders the signal card. The displayed message is
		// not necessarily the current view (a failed fetch leaves the error
		// copy on screen while currentView stays signal), so restoring
		// unconditionally is what makes the back control reliable; the
		// gateway treats Telegram's same-content edit rejection as success.
		return s.restoreSignal(ctx, origin, sess)
	}
	return s.openDetail(ctx, origin, sess, next)
}

func (s *InteractionService) restoreSignal(ctx context.Context, origin domain.MessageRef, sess domain.Session) error {
	controls := homeControls("")
	if origin.HasMedia {
		// A photo message cannot be edited back into text; replace it.
		// The fresh message carries the session key in its callback data
		// since its own message id is not the session's.
		if err := s.gateway.DeleteMessage(ctx, origin); err != nil {
			return err
		}
		if _, err := s.gateway.SendMessage(ctx, origin.ChatID, sess.SignalText, homeControls(sess.Key)); err != nil {
			return err
		}
	} else if err := s.gateway.EditMessage(ctx, origin, sess.SignalText, controls); err != nil {
		return err
	}
	return s.sessions.SetCurrentView(ctx, sess.Key, domain.ViewSignal)
}

func (s *InteractionService) openDetail(ctx context.Context, origin domain.MessageRef, sess domain.Session, target domain.View) error {
	req, ok := view.RequirementsFor(target)
	if !ok {
		return fmt.Errorf("%w: %s has no requirements", domain.ErrInvalidTransition, target)
	}

	if err := s.gateway.EditMessage(ctx, origin, msgLoading, nil); err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	switch req.Provider {
	case view.ProviderChart:
		image, err := s.charts.FetchChart(fetchCtx, sess.Instrument, sess.Timeframe)
		if err != nil {
			return s.showProviderFailure(ctx, origin, sess, err)
		}
		// Telegram cannot turn a text message into a photo, so the chart
		// goes out as a replacement message keyed back to the session.
		if err := s.gateway.DeleteMessage(ctx, origin); err != nil {
			return err
		}
		caption := render.TechnicalCaption(sess.Instrument, sess.Timeframe)
		if _, err := s.gateway.SendImage(ctx, origin.ChatID, image, caption, backControls(sess.Key)); err != nil {
			return err
		}
	case view.ProviderNews:
		text, err := s.sentiment.FetchSentiment(fetchCtx, sess.Instrument)
		if err != nil {
			return s.showProviderFailure(ctx, origin, sess, err)
		}
		if err := s.gateway.EditMessage(ctx, origin, text, backControls("")); err != nil {
			return err
		}
	case view.ProviderCalendar:
		text, err := s.calendar.FetchCalendar(fetchCtx, sess.Instrument, sess.Timeframe)
		if err != nil {
			return s.showProviderFailure(ctx, origin, sess, err)
		}
		if err := s.gateway.EditMessage(ctx, origin, text, backControls("")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", domain.ErrContentProvider, req.Provider)
	}

	return s.sessions.SetCurrentView(ctx, sess.Key, target)
}

// showProviderFailure renders the friendly failure view with a working back
// control and leaves currentView untouched, so a later back still restores
// the signal correctly.
func (s *InteractionService) showProviderFailure(ctx context.Context, origin domain.MessageRef, sess domain.Session, cause error) error {
	log.Printf("interaction: content fetch for %s failed: %v", sess.Key, cause)
	if err := s.gateway.EditMessage(ctx, origin, msgProviderFailure, backControls("")); err != nil {
		return err
	}
	return nil
}

func (s *InteractionService) showExpired(ctx context.Context, origin domain.MessageRef) {
	if origin.HasMedia {
		// A photo message cannot be edited into the text notice.
		_ = s.gateway.DeleteMessage(ctx, origin)
		if _, err := s.gateway.SendMessage(ctx, origin.ChatID, msgSessionExpired, nil); err != nil {
			log.Printf("interaction: expired notice for chat %d failed: %v", origin.ChatID, err)
		}
		return
	}
	if err := s.gateway.EditMessage(ctx, origin, msgSessionExpired, nil); err != nil {
		log.Printf("interaction: expired notice for %s failed: %v", origin.Key(), err)
	}
}

// ExpiredNotice is the user-facing session-expired copy, exposed for the
// transport layers that answer callbacks directly.
func ExpiredNotice() string { return msgSessionExpired }
