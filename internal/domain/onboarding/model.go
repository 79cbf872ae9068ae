package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
)

type Step string

const (
	StepAuth          Step = "AUTH"
	StepTechnicalArea Step = "TECHNICAL_AREA"
	StepCreateLeague  Step = "CREATE_LEAGUE"
	StepJoinLeague    Step = "JOIN_LEAGUE"
)

var (
	ErrInvalidTransition = errors.New("invalid onboarding transition")
	ErrNameRequired      = errors.New("manager name is required")
)

// Form holds what the user typed across the onboarding steps.
type Form struct {
	Name       string
	LeagueName string
	InviteCode string
}

// Flow is the onboarding state machine:
//
//	AUTH -> TECHNICAL_AREA -> CREATE_LEAGUE | JOIN_LEAGUE
//
// with Back returning from either choice to TECHNICAL_AREA.
type Flow struct {
	step Step
	form Form
}

func NewFlow() *Flow {
	return &Flow{step: StepAuth}
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Form() Form {
	return f.form
}

// SubmitName leaves AUTH once the trimmed name is non-empty.
func (f *Flow) SubmitName(name string) error {
	if err := f.expect(StepAuth); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	f.form.Name = name
	f.step = StepTechnicalArea
	return nil
}

func (f *Flow) ChooseCreate() error {
	if err := f.expect(StepTechnicalArea); err != nil {
		return err
	}
	f.step = StepCreateLeague
	return nil
}

func (f *Flow) ChooseJoin() error {
	if err := f.expect(StepTechnicalArea); err != nil {
		return err
	}
	f.step = StepJoinLeague
	return nil
}

func (f *Flow) Back() error {
	if f.step != StepCreateLeague && f.step != StepJoinLeague {
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, f.step)
	}
	f.step = StepTechnicalArea
	return nil
}

func (f *Flow) SetLeagueName(name string) error {
	if err := f.expect(StepCreateLeague); err != nil {
		return err
	}
	f.form.LeagueName = name
	return nil
}

// SetInviteCode stores the code the way the input box shows it.
func (f *Flow) SetInviteCode(code string) error {
	if err := f.expect(StepJoinLeague); err != nil {
		return err
	}
	f.form.InviteCode = league.NormalizeInviteCode(code)
	return nil
}

func (f *Flow) expect(step Step) error {
	if f.step != step {
		return fmt.Errorf("%w: expected step %s, at %s", ErrInvalidTransition, step, f.step)
	}
	return nil
}
