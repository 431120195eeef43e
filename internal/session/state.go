// Package session holds the per-user state shared by the interactive
// surfaces: the profile and inputs last entered, the projection calculated
// from them and the roadmap generated for that projection.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/internal/scenario"
)

// ErrScenarioChanged is returned by AttachRoadmap when the projection was
// recalculated after the roadmap request was taken.
var ErrScenarioChanged = errors.New("the scenario changed while the roadmap was being generated")

// State is one user's working set.
type State struct {
	ID string
	// ScenarioID identifies the current projection and changes on every
	// successful Recalculate.
	ScenarioID string
	Profile    company.Profile
	Input   scenario.Input
	Result  scenario.Result
	Roadmap *roadmap.Roadmap

	UpdatedAt time.Time
}

// NewState returns a state pre-filled with the given defaults and no
// calculated scenario.
func NewState(id string, profile company.Profile, in scenario.Input) *State {
	return &State{
		ID:        id,
		Profile:   profile,
		Input:     in,
		UpdatedAt: time.Now(),
	}
}

// Recalculate validates profile and in, projects the scenario and drops any
// roadmap generated for the previous one. On a validation error the state
// is left untouched.
func (s *State) Recalculate(profile company.Profile, in scenario.Input) error {
	profile = profile.Normalize()

	if err := errors.Join(in.Validate(), profile.Validate()); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	s.Profile = profile
	s.Input = in
	s.Result = scenario.Project(in)
	s.ScenarioID = uuid.NewString()
	s.Roadmap = nil
	s.UpdatedAt = time.Now()
	return nil
}

// HasScenario reports whether a projection has been calculated.
func (s *State) HasScenario() bool {
	return len(s.Result) > 0
}

// RoadmapRequest returns the request for the current projection, or
// roadmap.ErrNoScenario when none has been calculated.
func (s *State) RoadmapRequest() (roadmap.Request, error) {
	if !s.HasScenario() {
		return roadmap.Request{}, roadmap.ErrNoScenario
	}
	return roadmap.Request{Profile: s.Profile, Input: s.Input, Result: s.Result}, nil
}

// SetRoadmap records a roadmap generated for the current projection.
func (s *State) SetRoadmap(rm *roadmap.Roadmap) {
	s.Roadmap = rm
	s.UpdatedAt = time.Now()
}

// AttachRoadmap records rm only if it was generated for the projection
// identified by scenarioID.
func (s *State) AttachRoadmap(scenarioID string, rm *roadmap.Roadmap) error {
	if scenarioID == "" || scenarioID != s.ScenarioID {
		return ErrScenarioChanged
	}
	s.SetRoadmap(rm)
	return nil
}

// Report returns the renderable view of the current projection.
func (s *State) Report() scenario.Report {
	return scenario.NewReport(s.Input, s.Profile.BaselineYear, s.Result)
}
