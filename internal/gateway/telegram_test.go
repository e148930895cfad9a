package gateway

import (
	"context"
	"errors"
	"testing"

	tele "gopkg.in/telebot.v3"

	"signal-relay/internal/domain"
)

type fakeBot struct {
	sent      []interface{}
	sentOpts  [][]interface{}
	edited    []tele.Editable
	deleted   []tele.Editable
	responded []*tele.Callback
	sendErr   error
	editErr   error
}

func (b *fakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if b.sendErr != nil {
		return nil, b.sendErr
	}
	b.sent = append(b.sent, what)
	b.sentOpts = append(b.sentOpts, opts)
	msg := &tele.Message{ID: 100 + len(b.sent), Chat: &tele.Chat{ID: 42}}
	if _, isPhoto := what.(*tele.Photo); isPhoto {
		msg.Photo = &tele.Photo{}
	}
	return msg, nil
}

func (b *fakeBot) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if b.editErr != nil {
		return nil, b.editErr
	}
	b.edited = append(b.edited, msg)
	return &tele.Message{ID: 100, Chat: &tele.Chat{ID: 42}}, nil
}

func (b *fakeBot) Delete(msg tele.Editable) error {
	b.deleted = append(b.deleted, msg)
	return nil
}

func (b *fakeBot) Respond(c *tele.Callback, resp ...*tele.CallbackResponse) error {
	b.responded = append(b.responded, c)
	return nil
}

func TestSendMessageReturnsRef(t *testing.T) {
	bot := &fakeBot{}
	g := &Telegram{bot: bot}

	ref, err := g.SendMessage(context.Background(), 42, "hello", []domain.Control{
		{Label: "Market Sentiment", Data: "nav|sentiment|"},
		{Label: "Technical Analysis", Data: "nav|technical|"},
		{Label: "Economic Calendar", Data: "nav|calendar|"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ChatID != 42 || ref.MessageID == 0 || ref.HasMedia {
		t.Fatalf("unexpected ref: %+v", ref)
	}

	rm, ok := bot.sentOpts[0][0].(*tele.ReplyMarkup)
	if !ok {
		t.Fatalf("expected reply markup, got %T", bot.sentOpts[0][0])
	}
	if len(rm.InlineKeyboard) != 2 || len(rm.InlineKeyboard[0]) != 2 || len(rm.InlineKeyboard[1]) != 1 {
		t.Fatalf("unexpected keyboard shape: %+v", rm.InlineKeyboard)
	}
	if rm.InlineKeyboard[0][0].Data != "nav|sentiment|" {
		t.Fatalf("unexpected callback data: %q", rm.InlineKeyboard[0][0].Data)
	}
}

func TestSendMessageWrapsDeliveryError(t *testing.T) {
	g := &Telegram{bot: &fakeBot{sendErr: errors.New("403 forbidden")}}

	_, err := g.SendMessage(context.Background(), 42, "hello", nil)
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
}

func TestSendImageMarksMedia(t *testing.T) {
	g := &Telegram{bot: &fakeBot{}}

	ref, err := g.SendImage(context.Background(), 42, []byte{0x89, 'P', 'N', 'G'}, "caption", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.HasMedia {
		t.Fatalf("expected media ref, got %+v", ref)
	}
}

func TestEditAndDeleteTargetStoredMessage(t *testing.T) {
	bot := &fakeBot{}
	g := &Telegram{bot: bot}
	ref := domain.MessageRef{ChatID: 42, MessageID: 7}

	if err := g.EditMessage(context.Background(), ref, "updated", nil); err != nil {
		t.Fatalf("unexpected edit error: %v", err)
	}
	if err := g.DeleteMessage(context.Background(), ref); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	msgID, chatID := bot.edited[0].MessageSig()
	if msgID != "7" || chatID != 42 {
		t.Fatalf("unexpected edit target: %s %d", msgID, chatID)
	}
	if len(bot.deleted) != 1 {
		t.Fatalf("expected one delete, got %d", len(bot.deleted))
	}
}

func TestEditSameContentIsNotAFailure(t *testing.T) {
	g := &Telegram{bot: &fakeBot{editErr: tele.ErrSameMessageContent}}
	ref := domain.MessageRef{ChatID: 42, MessageID: 7}

	if err := g.EditMessage(context.Background(), ref, "unchanged card", nil); err != nil {
		t.Fatalf("same-content edit must succeed, got %v", err)
	}
}

func TestEditWrapsDeliveryError(t *testing.T) {
	g := &Telegram{bot: &fakeBot{editErr: errors.New("400 bad request")}}
	ref := domain.MessageRef{ChatID: 42, MessageID: 7}

	err := g.EditMessage(context.Background(), ref, "updated", nil)
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
}

func TestCancelledContextShortCircuits(t *testing.T) {
	bot := &fakeBot{}
	g := &Telegram{bot: bot}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.SendMessage(ctx, 42, "hello", nil); !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
	if len(bot.sent) != 0 {
		t.Fatal("expected no send after cancellation")
	}
}
