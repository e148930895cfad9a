// Package view defines the legal transitions between the display modes of a
// dispatched signal message. Detail views are always exactly one hop from
// the signal view: opening a detail is legal only from signal, and the only
// legal move out of a detail is back.
package view

import (
	"fmt"

	"signal-relay/internal/domain"
)

// Provider names the content provider a detail view renders from.
type Provider string

const (
	ProviderChart    Provider = "chart"
	ProviderNews     Provider = "news"
	ProviderCalendar Provider = "calendar"
)

// Requirements declares what a detail view needs from the session and
// which provider supplies its content.
type Requirements struct {
	Provider       Provider
	NeedsTimeframe bool
}

var detailRequirements = map[domain.View]Requirements{
	domain.ViewTechnical: {Provider: ProviderChart, NeedsTimeframe: true},
	domain.ViewSentiment: {Provider: ProviderNews},
	domain.ViewCalendar:  {Provider: ProviderCalendar},
}

// RequirementsFor returns the render requirements for a detail view.
func RequirementsFor(v domain.View) (Requirements, bool) {
	req, ok := detailRequirements[v]
	return req, ok
}

// Next resolves a requested transition against the current view.
//
// From signal, opening any detail view succeeds; back is a legal no-op.
// From a detail view only back is legal and always lands on signal.
// A detail-to-detail hop fails with ErrInvalidTransition: it only happens
// when two buttons are tapped in quick succession on stale content, and
// silently switching would race the first tap's edit.
func Next(current domain.View, t domain.Transition) (domain.View, error) {
	if t == domain.TransitionBack {
		return domain.ViewSignal, nil
	}

	target, ok := t.Target()
	if !ok {
		return "", fmt.Errorf("%w: unknown transition %q", domain.ErrInvalidTransition, t)
	}
	if current != domain.ViewSignal {
		return "", fmt.Errorf("%w: cannot open %s from %s", domain.ErrInvalidTransition, target, current)
	}
	return target, nil
}
