package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy", "long":
		return DirectionBuy, true
	case "sell", "short":
		return DirectionSell, true
	default:
		return "", false
	}
}

// View is one of the display modes a dispatched signal message can be in.
// ViewSignal is both the initial state and the home state every detail
// view returns to.
type View string

const (
	ViewSignal    View = "signal"
	ViewSentiment View = "sentiment"
	ViewTechnical View = "technical"
	ViewCalendar  View = "calendar"
)

func (v View) IsDetail() bool {
	return v == ViewSentiment || v == ViewTechnical || v == ViewCalendar
}

// Transition is a user-requested move between views. The string values
// double as the callback tokens carried on inline buttons.
type Transition string

const (
	TransitionBack      Transition = "back"
	TransitionSentiment Transition = "sentiment"
	TransitionTechnical Transition = "technical"
	TransitionCalendar  Transition = "calendar"
)

func ParseTransition(raw string) (Transition, bool) {
	switch Transition(strings.ToLower(strings.TrimSpace(raw))) {
	case TransitionBack:
		return TransitionBack, true
	case TransitionSentiment:
		return TransitionSentiment, true
	case TransitionTechnical:
		return TransitionTechnical, true
	case TransitionCalendar:
		return TransitionCalendar, true
	default:
		return "", false
	}
}

// Target returns the detail view an open-transition points at.
func (t Transition) Target() (View, bool) {
	switch t {
	case TransitionSentiment:
		return ViewSentiment, true
	case TransitionTechnical:
		return ViewTechnical, true
	case TransitionCalendar:
		return ViewCalendar, true
	default:
		return "", false
	}
}

// SignalDescription is the inbound trading-signal payload after decoding.
type SignalDescription struct {
	Instrument string    `json:"instrument"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entry_price"`
	StopLoss   float64   `json:"stop_loss,omitempty"`
	TakeProfit float64   `json:"take_profit,omitempty"`
	RiskPips   float64   `json:"risk_pips,omitempty"`
	Timeframe  string    `json:"timeframe,omitempty"`
	Strategy   string    `json:"strategy,omitempty"`
	AIVerdict  string    `json:"ai_verdict,omitempty"`
	RiskReward float64   `json:"risk_reward,omitempty"`
}

const DefaultTimeframe = "1h"

// Validate checks the minimum dispatchable shape of a signal.
func (s SignalDescription) Validate() error {
	if strings.TrimSpace(s.Instrument) == "" {
		return fmt.Errorf("%w: missing instrument", ErrInvalidSignal)
	}
	if s.Direction != DirectionBuy && s.Direction != DirectionSell {
		return fmt.Errorf("%w: direction must be buy or sell", ErrInvalidSignal)
	}
	if s.EntryPrice <= 0 {
		return fmt.Errorf("%w: entry price must be positive", ErrInvalidSignal)
	}
	return nil
}

// Session is the per-notification navigation state. One session exists per
// delivered signal message; SignalText is the exact render last shown for
// the SIGNAL view and is the only content restored on "back".
type Session struct {
	Key         string `json:"key"`
	Instrument  string `json:"instrument"`
	Timeframe   string `json:"timeframe"`
	SignalText  string `json:"signal_text"`
	CurrentView View   `json:"current_view"`
}

// MessageRef identifies a delivered chat message. HasMedia tells the
// interaction flow whether the displayed message can be edited in place
// (Telegram cannot edit a photo message into a text message or back).
type MessageRef struct {
	ChatID    int64
	MessageID int
	HasMedia  bool
}

// Key is the session key for a message: "chatID:messageID". Keying by the
// delivered message rather than the chat keeps multiple outstanding signals
// in one chat from trampling each other.
func (r MessageRef) Key() string {
	return strconv.FormatInt(r.ChatID, 10) + ":" + strconv.Itoa(r.MessageID)
}

// Control is one inline button attached to a message.
type Control struct {
	Label string
	Data  string
}

// RecipientOutcome reports the dispatch result for a single recipient.
type RecipientOutcome struct {
	ChatID     int64  `json:"chat_id"`
	Delivered  bool   `json:"delivered"`
	SessionKey string `json:"session_key,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type DispatchResult struct {
	Outcomes []RecipientOutcome `json:"outcomes"`
}

func (r DispatchResult) DeliveredCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Delivered {
			n++
		}
	}
	return n
}
