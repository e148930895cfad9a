// Package gateway wraps the Telegram bot API behind the small send/edit/
// delete surface the relay services need. Telegram specifics (inline
// keyboards, photo uploads, callback acks) stay on this side of the
// boundary; services only see message refs and domain errors.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"signal-relay/internal/domain"
)

// botAPI is the slice of telebot the gateway uses, narrowed for tests.
type botAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
	Respond(c *tele.Callback, resp ...*tele.CallbackResponse) error
}

type Telegram struct {
	bot botAPI
}

func NewTelegram(bot *tele.Bot) *Telegram {
	return &Telegram{bot: bot}
}

func (g *Telegram) SendMessage(ctx context.Context, chatID int64, text string, controls []domain.Control) (domain.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return domain.MessageRef{}, fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	msg, err := g.bot.Send(&tele.Chat{ID: chatID}, text, markup(controls))
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("%w: send to chat %d: %v", domain.ErrDelivery, chatID, err)
	}
	return refOf(msg), nil
}

func (g *Telegram) EditMessage(ctx context.Context, ref domain.MessageRef, text string, controls []domain.Control) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	editable := storedMessage(ref)
	if _, err := g.bot.Edit(editable, text, markup(controls)); err != nil {
		// Telegram rejects an edit that changes nothing; the message already
		// shows the wanted content, so that is not a failure.
		if errors.Is(err, tele.ErrSameMessageContent) {
			return nil
		}
		return fmt.Errorf("%w: edit message %s: %v", domain.ErrDelivery, ref.Key(), err)
	}
	return nil
}

func (g *Telegram) SendImage(ctx context.Context, chatID int64, image []byte, caption string, controls []domain.Control) (domain.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return domain.MessageRef{}, fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(image)),
		Caption: caption,
	}
	msg, err := g.bot.Send(&tele.Chat{ID: chatID}, photo, markup(controls))
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("%w: send photo to chat %d: %v", domain.ErrDelivery, chatID, err)
	}
	return refOf(msg), nil
}

func (g *Telegram) DeleteMessage(ctx context.Context, ref domain.MessageRef) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	if err := g.bot.Delete(storedMessage(ref)); err != nil {
		return fmt.Errorf("%w: delete message %s: %v", domain.ErrDelivery, ref.Key(), err)
	}
	return nil
}

// AnswerCallback acknowledges a button press. Telegram shows a spinner on
// the button until the callback is answered, even when no content changes.
func (g *Telegram) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	cb := &tele.Callback{ID: callbackID}
	if err := g.bot.Respond(cb, &tele.CallbackResponse{Text: text}); err != nil {
		return fmt.Errorf("%w: answer callback %s: %v", domain.ErrDelivery, callbackID, err)
	}
	return nil
}

func markup(controls []domain.Control) *tele.ReplyMarkup {
	rm := &tele.ReplyMarkup{}
	if len(controls) == 0 {
		return rm
	}
	row := make([]tele.InlineButton, 0, len(controls))
	for _, c := range controls {
		row = append(row, tele.InlineButton{Text: c.Label, Data: c.Data})
	}
	// Two buttons per row keeps labels readable on narrow clients.
	for len(row) > 0 {
		n := 2
		if len(row) < n {
			n = len(row)
		}
		rm.InlineKeyboard = append(rm.InlineKeyboard, row[:n])
		row = row[n:]
	}
	return rm
}

func storedMessage(ref domain.MessageRef) tele.Editable {
	return &tele.StoredMessage{
		ChatID:    ref.ChatID,
		MessageID: strconv.Itoa(ref.MessageID),
	}
}

func refOf(msg *tele.Message) domain.MessageRef {
	return domain.MessageRef{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		HasMedia:  msg.Photo != nil,
	}
}
