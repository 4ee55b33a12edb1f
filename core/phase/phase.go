// Package phase defines the shared vocabulary for session phases: the stages
// a political-simulation session moves through from campaign to government.
package phase

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Phase identifies the current stage of a simulation session.
type Phase string

const (
	PreElection        Phase = "pre_election"
	Election           Phase = "election"
	CoalitionFormation Phase = "coalition_formation"
	Governance         Phase = "governance"
)

// ErrUnknown is returned by Parse for strings outside the phase vocabulary.
var ErrUnknown = errors.New("unknown phase")

// Values returns all phases in canonical session order. The order is
// informational only; transitions between arbitrary phases are permitted.
func Values() []Phase {
	return []Phase{PreElection, Election, CoalitionFormation, Governance}
}

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool {
	switch p {
	case PreElection, Election, CoalitionFormation, Governance:
		return true
	}
	return false
}

func (p Phase) String() string {
	return string(p)
}

// Parse converts a string into a Phase.
// Returns ErrUnknown for anything outside the vocabulary.
func Parse(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return p, nil
}

// UnmarshalJSON decodes a phase and rejects values outside the vocabulary,
// so config files fail fast instead of carrying a bad phase into a session.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML config files.
func (p *Phase) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
