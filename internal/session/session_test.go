package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/internal/scenario"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
	)
}

func validInput() scenario.Input {
	return scenario.Input{Scope1: 100, Scope2: 50, ReductionRatePercent: 50, HorizonYears: 5}
}

func TestState_Recalculate(t *testing.T) {
	st := NewState("s1", company.DefaultProfile(), scenario.Input{HorizonYears: 5})
	st.Roadmap = &roadmap.Roadmap{Markdown: "stale"}

	profile := company.DefaultProfile()
	profile.Sources = []string{" Gas ", "Gas", ""}

	require.NoError(t, st.Recalculate(profile, validInput()))

	assert.True(t, st.HasScenario())
	assert.Len(t, st.Result, 6)
	assert.Nil(t, st.Roadmap, "a new projection invalidates the roadmap")
	assert.Equal(t, []string{"Gas"}, st.Profile.Sources)
}

func TestState_RecalculateInvalidKeepsState(t *testing.T) {
	st := NewState("s1", company.DefaultProfile(), validInput())
	require.NoError(t, st.Recalculate(company.DefaultProfile(), validInput()))
	st.SetRoadmap(&roadmap.Roadmap{Markdown: "keep"})

	bad := validInput()
	bad.HorizonYears = 0
	badProfile := company.DefaultProfile()
	badProfile.Industry = "Mining"

	err := st.Recalculate(badProfile, bad)

	require.ErrorIs(t, err, scenario.ErrHorizonOutOfRange)
	require.ErrorIs(t, err, company.ErrUnknownOption)
	assert.Equal(t, 5, st.Input.HorizonYears)
	require.NotNil(t, st.Roadmap)
	assert.Equal(t, "keep", st.Roadmap.Markdown)
}

func TestState_RoadmapRequest(t *testing.T) {
	st := NewState("s1", company.DefaultProfile(), validInput())

	_, err := st.RoadmapRequest()
	require.ErrorIs(t, err, roadmap.ErrNoScenario)

	require.NoError(t, st.Recalculate(company.DefaultProfile(), validInput()))
	req, err := st.RoadmapRequest()
	require.NoError(t, err)
	assert.Len(t, req.Result, 6)
	assert.Equal(t, 2020, st.Report().Rows[0].Year)
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Minute, company.DefaultProfile(), validInput())

	st := store.Create()
	require.NotEmpty(t, st.ID)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get(st.ID)
	require.True(t, ok)
	assert.Equal(t, st.ID, got.ID)
	assert.False(t, got.HasScenario())
	assert.InDelta(t, 100.0, got.Input.Scope1, 1e-9)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(time.Minute, company.DefaultProfile(), validInput())
	st := store.Create()

	got, _ := store.Get(st.ID)
	require.NoError(t, got.Recalculate(company.DefaultProfile(), validInput()))

	again, _ := store.Get(st.ID)
	assert.False(t, again.HasScenario(), "changes are not visible until saved")

	store.Save(got)
	again, _ = store.Get(st.ID)
	assert.True(t, again.HasScenario())
}

func TestStore_GetOrCreate(t *testing.T) {
	store := NewStore(0, company.DefaultProfile(), validInput())
	assert.Equal(t, DefaultTTL, store.TTL())

	first := store.GetOrCreate("")
	second := store.GetOrCreate(first.ID)
	third := store.GetOrCreate("no-such-session")

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(20*time.Millisecond, company.DefaultProfile(), validInput())
	st := store.Create()

	time.Sleep(50 * time.Millisecond)

	_, ok := store.Get(st.ID)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute, company.DefaultProfile(), validInput())
	st := store.Create()

	store.Delete(st.ID)

	_, ok := store.Get(st.ID)
	assert.False(t, ok)
	store.Save(nil)
	store.Save(&State{})
	assert.Equal(t, 0, store.Len())
}

func TestState_AttachRoadmap(t *testing.T) {
	st := NewState("s1", company.DefaultProfile(), validInput())
	assert.ErrorIs(t, st.AttachRoadmap("", &roadmap.Roadmap{}), ErrScenarioChanged)

	require.NoError(t, st.Recalculate(company.DefaultProfile(), validInput()))
	first := st.ScenarioID
	require.NotEmpty(t, first)

	longer := validInput()
	longer.HorizonYears = 10
	require.NoError(t, st.Recalculate(company.DefaultProfile(), longer))
	require.NotEqual(t, first, st.ScenarioID)

	err := st.AttachRoadmap(first, &roadmap.Roadmap{Markdown: "for five years"})
	require.ErrorIs(t, err, ErrScenarioChanged)
	assert.Nil(t, st.Roadmap)

	require.NoError(t, st.AttachRoadmap(st.ScenarioID, &roadmap.Roadmap{Markdown: "for ten years"}))
	assert.Equal(t, "for ten years", st.Roadmap.Markdown)
}

func TestStore_Update(t *testing.T) {
	store := NewStore(time.Minute, company.DefaultProfile(), validInput())
	st := store.Create()
	require.NoError(t, st.Recalculate(company.DefaultProfile(), validInput()))
	store.Save(st)

	got, err := store.Update(st.ID, func(cur *State) error {
		return cur.AttachRoadmap(st.ScenarioID, &roadmap.Roadmap{Markdown: "plan"})
	})
	require.NoError(t, err)
	assert.Equal(t, "plan", got.Roadmap.Markdown)
	saved, _ := store.Get(st.ID)
	require.NotNil(t, saved.Roadmap)

	_, err = store.Update(st.ID, func(cur *State) error {
		cur.Roadmap = nil
		return ErrScenarioChanged
	})
	require.ErrorIs(t, err, ErrScenarioChanged)
	saved, _ = store.Get(st.ID)
	assert.NotNil(t, saved.Roadmap, "a failed update is not saved")

	_, err = store.Update("no-such-session", func(*State) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}
