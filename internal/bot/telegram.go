package bot

import (
	"context"
	"errors"
	"log"
	"time"

	tele "gopkg.in/telebot.v3"

	"signal-relay/internal/domain"
)

// InteractionHandler drives the view state machine for button presses.
type InteractionHandler interface {
	Handle(ctx context.Context, origin domain.MessageRef, sessionKey string, t domain.Transition) error
}

// SubscriberDirectory manages broadcast opt-in for a chat.
type SubscriberDirectory interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
}

// NewBot builds the long-polling Telegram bot. The returned bot has not
// been started; callers wire handlers and call Start.
func NewBot(token string) (*tele.Bot, error) {
	return tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
}

// RegisterHandlers attaches the relay's commands and callback routing.
func RegisterHandlers(b *tele.Bot, interactions InteractionHandler, directory SubscriberDirectory) {
	b.Handle("/start", func(c tele.Context) error {
		return c.Send("Signal relay online. You will receive trading signals here. Use /subscribe to join broadcast dispatches.")
	})

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/subscribe", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}
		if directory == nil {
			return c.Send("Subscriptions unavailable: no directory configured.")
		}
		added, err := directory.Subscribe(context.Background(), chat.ID)
		if err != nil {
			log.Printf("bot: subscribe chat %d: %v", chat.ID, err)
			return c.Send("Subscription failed, try again later.")
		}
		if added {
			return c.Send("Subscribed. This chat will receive broadcast signals.")
		}
		return c.Send("This chat is already subscribed.")
	})

	b.Handle("/unsubscribe", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}
		if directory == nil {
			return c.Send("Subscriptions unavailable: no directory configured.")
		}
		removed, err := directory.Unsubscribe(context.Background(), chat.ID)
		if err != nil {
			log.Printf("bot: unsubscribe chat %d: %v", chat.ID, err)
			return c.Send("Unsubscribe failed, try again later.")
		}
		if removed {
			return c.Send("Unsubscribed. This chat will no longer receive broadcast signals.")
		}
		return c.Send("This chat was not subscribed.")
	})

	b.Handle(tele.OnCallback, func(c tele.Context) error {
		return handleCallback(c, interactions)
	})
}

// handleCallback routes an inline-button press to the interaction handler
// and answers the callback so Telegram stops the button spinner. All
// interaction failures are absorbed here: an expired session answers with
// the friendly notice, a rejected transition answers silently.
func handleCallback(c tele.Context, interactions InteractionHandler) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}

	transition, sessionKey, ok := domain.ParseCallback(cb.Data)
	if !ok {
		// Buttons from older bot revisions; acknowledge and ignore.
		return c.Respond()
	}

	origin := domain.MessageRef{
		ChatID:    cb.Message.Chat.ID,
		MessageID: cb.Message.ID,
		HasMedia:  cb.Message.Photo != nil,
	}

	err := interactions.Handle(context.Background(), origin, sessionKey, transition)
	switch {
	case err == nil:
		return c.Respond()
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Respond()
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Respond(&tele.CallbackResponse{Text: expiredNotice})
	default:
		log.Printf("bot: callback for %s failed: %v", origin.Key(), err)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong, please try again."})
	}
}

const expiredNotice = "This signal has expired. Please request a new signal."
