package bot

import (
	"context"
	"fmt"
	"testing"

	tele "gopkg.in/telebot.v3"

	"signal-relay/internal/domain"
)

type recordedHandle struct {
	origin     domain.MessageRef
	sessionKey string
	transition domain.Transition
}

type fakeInteractions struct {
	calls []recordedHandle
	err   error
}

func (f *fakeInteractions) Handle(_ context.Context, origin domain.MessageRef, sessionKey string, t domain.Transition) error {
	f.calls = append(f.calls, recordedHandle{origin: origin, sessionKey: sessionKey, transition: t})
	return f.err
}

// fakeTeleContext implements the slice of tele.Context handleCallback uses.
type fakeTeleContext struct {
	tele.Context
	callback  *tele.Callback
	responses []*tele.CallbackResponse
}

func (c *fakeTeleContext) Callback() *tele.Callback { return c.callback }

func (c *fakeTeleContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.responses = append(c.responses, &tele.CallbackResponse{})
		return nil
	}
	c.responses = append(c.responses, resp...)
	return nil
}

func callbackContext(data string, hasPhoto bool) *fakeTeleContext {
	msg := &tele.Message{ID: 100, Chat: &tele.Chat{ID: 42}}
	if hasPhoto {
		msg.Photo = &tele.Photo{}
	}
	return &fakeTeleContext{callback: &tele.Callback{ID: "cb1", Data: data, Message: msg}}
}

func TestHandleCallbackRoutesTransition(t *testing.T) {
	interactions := &fakeInteractions{}
	ctx := callbackContext(domain.EncodeCallback(domain.TransitionSentiment, ""), false)

	if err := handleCallback(ctx, interactions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(interactions.calls) != 1 {
		t.Fatalf("expected one handle call, got %d", len(interactions.calls))
	}
	call := interactions.calls[0]
	if call.transition != domain.TransitionSentiment || call.sessionKey != "" {
		t.Fatalf("unexpected call: %+v", call)
	}
	if call.origin.ChatID != 42 || call.origin.MessageID != 100 || call.origin.HasMedia {
		t.Fatalf("unexpected origin: %+v", call.origin)
	}
	if len(ctx.responses) != 1 || ctx.responses[0].Text != "" {
		t.Fatalf("expected silent ack, got %+v", ctx.responses)
	}
}

func TestHandleCallbackCarriesSessionKeyAndMedia(t *testing.T) {
	interactions := &fakeInteractions{}
	ctx := callbackContext(domain.EncodeCallback(domain.TransitionBack, "42:77"), true)

	if err := handleCallback(ctx, interactions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := interactions.calls[0]
	if call.sessionKey != "42:77" || !call.origin.HasMedia {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestHandleCallbackExpiredSessionAnswersWithNotice(t *testing.T) {
	interactions := &fakeInteractions{err: fmt.Errorf("%w: 42:100", domain.ErrSessionNotFound)}
	ctx := callbackContext(domain.EncodeCallback(domain.TransitionBack, ""), false)

	if err := handleCallback(ctx, interactions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.responses) != 1 || ctx.responses[0].Text != expiredNotice {
		t.Fatalf("expected expired notice, got %+v", ctx.responses)
	}
}

func TestHandleCallbackInvalidTransitionAcksSilently(t *testing.T) {
	interactions := &fakeInteractions{err: fmt.Errorf("%w: sentiment from technical", domain.ErrInvalidTransition)}
	ctx := callbackContext(domain.EncodeCallback(domain.TransitionSentiment, ""), false)

	if err := handleCallback(ctx, interactions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.responses) != 1 || ctx.responses[0].Text != "" {
		t.Fatalf("expected silent ack, got %+v", ctx.responses)
	}
}

func TestHandleCallbackIgnoresForeignData(t *testing.T) {
	interactions := &fakeInteractions{}
	ctx := callbackContext("legacy_sentiment_EURUSD", false)

	if err := handleCallback(ctx, interactions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interactions.calls) != 0 {
		t.Fatalf("expected no handle calls, got %+v", interactions.calls)
	}
	if len(ctx.responses) != 1 {
		t.Fatalf("expected ack for foreign data, got %+v", ctx.responses)
	}
}
