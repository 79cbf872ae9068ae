package onboarding

import (
	"errors"
	"testing"
)

func TestFlow_CreatePath(t *testing.T) {
	f := NewFlow()
	if f.Step() != StepAuth {
		t.Fatalf("unexpected initial step: %s", f.Step())
	}

	if err := f.SubmitName("   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired for blank name, got %v", err)
	}
	if f.Step() != StepAuth {
		t.Fatalf("blank name must not advance, at %s", f.Step())
	}

	if err := f.SubmitName(" Guardiola "); err != nil {
		t.Fatalf("submit name: %v", err)
	}
	if f.Step() != StepTechnicalArea {
		t.Fatalf("unexpected step after name: %s", f.Step())
	}
	if err := f.ChooseCreate(); err != nil {
		t.Fatalf("choose create: %v", err)
	}
	if err := f.SetLeagueName("ChemEng 2025"); err != nil {
		t.Fatalf("set league name: %v", err)
	}

	form := f.Form()
	if form.Name != "Guardiola" || form.LeagueName != "ChemEng 2025" {
		t.Fatalf("unexpected form: %+v", form)
	}
}

func TestFlow_BackTransitions(t *testing.T) {
	f := NewFlow()
	if err := f.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from AUTH, got %v", err)
	}

	_ = f.SubmitName("Klopp")
	if err := f.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from TECHNICAL_AREA, got %v", err)
	}

	_ = f.ChooseJoin()
	if err := f.Back(); err != nil {
		t.Fatalf("back from join: %v", err)
	}
	if f.Step() != StepTechnicalArea {
		t.Fatalf("unexpected step after back: %s", f.Step())
	}

	_ = f.ChooseCreate()
	if err := f.Back(); err != nil {
		t.Fatalf("back from create: %v", err)
	}
	if f.Step() != StepTechnicalArea {
		t.Fatalf("unexpected step after back: %s", f.Step())
	}
}

func TestFlow_StepGuards(t *testing.T) {
	f := NewFlow()
	if err := f.ChooseCreate(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := f.SetInviteCode("abc"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	_ = f.SubmitName("Ancelotti")
	_ = f.ChooseJoin()
	if err := f.SetLeagueName("nope"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for league name in join step, got %v", err)
	}
	if err := f.SetInviteCode("xyz123abc"); err != nil {
		t.Fatalf("set invite code: %v", err)
	}
	if got := f.Form().InviteCode; got != "XYZ123" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
}
