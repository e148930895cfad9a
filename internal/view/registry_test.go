package view

import (
	"errors"
	"testing"

	"signal-relay/internal/domain"
)

func TestNextOpensEveryDetailFromSignal(t *testing.T) {
	cases := map[domain.Transition]domain.View{
		domain.TransitionSentiment: domain.ViewSentiment,
		domain.TransitionTechnical: domain.ViewTechnical,
		domain.TransitionCalendar:  domain.ViewCalendar,
	}
	for transition, want := range cases {
		got, err := Next(domain.ViewSignal, transition)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", transition, err)
		}
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestNextBackAlwaysReturnsSignal(t *testing.T) {
	for _, current := range []domain.View{
		domain.ViewSignal,
		domain.ViewSentiment,
		domain.ViewTechnical,
		domain.ViewCalendar,
	} {
		got, err := Next(current, domain.TransitionBack)
		if err != nil {
			t.Fatalf("unexpected error from %s: %v", current, err)
		}
		if got != domain.ViewSignal {
			t.Fatalf("expected signal from %s, got %s", current, got)
		}
	}
}

func TestNextRejectsDetailToDetail(t *testing.T) {
	details := []domain.View{domain.ViewSentiment, domain.ViewTechnical, domain.ViewCalendar}
	opens := []domain.Transition{domain.TransitionSentiment, domain.TransitionTechnical, domain.TransitionCalendar}

	for _, current := range details {
		for _, transition := range opens {
			_, err := Next(current, transition)
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition for %s from %s, got %v", transition, current, err)
			}
		}
	}
}

func TestNextRejectsUnknownTransition(t *testing.T) {
	if _, err := Next(domain.ViewSignal, domain.Transition("refresh")); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequirementsForDetailViews(t *testing.T) {
	req, ok := RequirementsFor(domain.ViewTechnical)
	if !ok || req.Provider != ProviderChart || !req.NeedsTimeframe {
		t.Fatalf("unexpected technical requirements: %+v ok=%v", req, ok)
	}

	req, ok = RequirementsFor(domain.ViewSentiment)
	if !ok || req.Provider != ProviderNews || req.NeedsTimeframe {
		t.Fatalf("unexpected sentiment requirements: %+v ok=%v", req, ok)
	}

	req, ok = RequirementsFor(domain.ViewCalendar)
	if !ok || req.Provider != ProviderCalendar {
		t.Fatalf("unexpected calendar requirements: %+v ok=%v", req, ok)
	}

	if _, ok := RequirementsFor(domain.ViewSignal); ok {
		t.Fatal("signal view must not declare provider requirements")
	}
}
