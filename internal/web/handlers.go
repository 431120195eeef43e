package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/internal/session"
)

var errNoGenerator = errors.New("roadmap generation is not configured")

type options struct {
	Industries        []string
	HeadcountBands    []string
	BaselineYears     []int
	EmissionSources   []string
	Equipment         []string
	SavingLawStatuses []string
	EmissionProfiles  []string
}

//nolint:gochecknoglobals // Read-only view of the company catalogues.
var formOptions = options{
	Industries:        company.Industries,
	HeadcountBands:    company.HeadcountBands,
	BaselineYears:     company.BaselineYears,
	EmissionSources:   company.EmissionSources,
	Equipment:         company.Equipment,
	SavingLawStatuses: company.SavingLawStatuses,
	EmissionProfiles:  company.EmissionProfiles,
}

type rowView struct {
	Year      int
	BAU       string
	Planned   string
	Reduction string
}

type pageData struct {
	Error   string
	Options options
	Profile company.Profile
	Input   scenario.Input

	Rows        []rowView
	Chart       template.HTML
	Avoided     string
	Equivalency string

	Roadmap       template.HTML
	RoadmapCached bool

	Version string
}

func (s *Server) newPage(st *session.State) pageData {
	p := pageData{
		Options: formOptions,
		Profile: st.Profile,
		Input:   st.Input,
		Version: s.config.Version,
	}
	if st.HasScenario() {
		report := st.Report().WithPrecision(s.precision)
		p.Rows = make([]rowView, len(report.Rows))
		for i, r := range report.Rows {
			p.Rows[i] = rowView{
				Year:      r.Year,
				BAU:       report.Emissions(r.BAU),
				Planned:   report.Emissions(r.Planned),
				Reduction: report.Percent(r.ReductionPercent),
			}
		}
		p.Chart = renderChartSVG(report.Rows)
		p.Avoided = report.Emissions(report.Summary.CumulativeAvoided)
		if !report.Equivalency.IsEmpty {
			p.Equivalency = report.Equivalency.DisplayText
		}
	}
	if st.Roadmap != nil {
		p.Roadmap = renderMarkdownHTML(st.Roadmap.Markdown)
		p.RoadmapCached = st.Roadmap.Cached
	}
	return p
}

func (s *Server) render(c echo.Context, status int, p pageData) error {
	var buf strings.Builder
	if err := s.page.Execute(&buf, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return c.HTML(status, buf.String())
}

// state returns the caller's session, creating one and setting the cookie
// when the request carries no live session.
func (s *Server) state(c echo.Context) *session.State {
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if st, ok := s.sessions.Get(cookie.Value); ok {
			return st
		}
	}

	st := s.sessions.Create()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessions.TTL().Seconds()),
	})
	return st
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, http.StatusOK, s.newPage(s.state(c)))
}

func (s *Server) handleScenario(c echo.Context) error {
	st := s.state(c)
	log := s.logger.With().Str("operation", "scenario").Str("session", st.ID).Logger()

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form").SetInternal(err)
	}

	profile, in, err := parseForm(form, st.Profile, st.Input)
	if err == nil {
		err = st.Recalculate(profile, in)
	}
	if err != nil {
		s.metrics.recordScenario(false)
		log.Debug().Err(err).Msg("rejected scenario input")

		p := s.newPage(st)
		p.Profile, p.Input = profile, in
		p.Error = err.Error()
		return s.render(c, http.StatusUnprocessableEntity, p)
	}

	s.sessions.Save(st)
	s.metrics.recordScenario(true)
	log.Debug().
		Float64("baseline_tco2e", in.Baseline()).
		Int("horizon_years", in.HorizonYears).
		Msg("scenario calculated")
	return s.render(c, http.StatusOK, s.newPage(st))
}

func (s *Server) handleRoadmap(c echo.Context) error {
	st := s.state(c)
	ctx := c.Request().Context()
	log := s.logger.With().
		Str("operation", "roadmap").
		Str("session", st.ID).
		Str("trace_id", logging.GetOrGenerateTraceID(ctx)).
		Logger()

	req, err := st.RoadmapRequest()
	if err != nil {
		s.metrics.recordRoadmap(outcomeNoScenario, 0)
		p := s.newPage(st)
		p.Error = err.Error()
		return s.render(c, http.StatusConflict, p)
	}

	if s.generator == nil {
		s.metrics.recordRoadmap(outcomeError, 0)
		p := s.newPage(st)
		p.Error = errNoGenerator.Error()
		return s.render(c, http.StatusServiceUnavailable, p)
	}

	start := time.Now()
	rm, err := s.generator.Generate(log.WithContext(ctx), req)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.recordRoadmap(outcomeError, elapsed)
		log.Error().Err(err).Dur("duration", elapsed).Msg("roadmap generation failed")
		p := s.newPage(st)
		p.Error = "Roadmap generation failed: " + err.Error()
		return s.render(c, http.StatusBadGateway, p)
	}

	// A POST /scenario may have replaced the projection while the request
	// was out; the roadmap only belongs to the one it was generated for.
	scenarioID := st.ScenarioID
	cur, err := s.sessions.Update(st.ID, func(cur *session.State) error {
		return cur.AttachRoadmap(scenarioID, rm)
	})
	switch {
	case errors.Is(err, session.ErrNotFound):
		st.SetRoadmap(rm)
		s.sessions.Save(st)
		cur = st
	case errors.Is(err, session.ErrScenarioChanged):
		s.metrics.recordRoadmap(outcomeStale, elapsed)
		log.Info().Dur("duration", elapsed).Msg("discarding roadmap for a replaced scenario")
		p := s.newPage(cur)
		p.Error = "The scenario changed while the roadmap was being generated. Generate it again."
		return s.render(c, http.StatusConflict, p)
	case err != nil:
		return err
	}

	outcome := outcomeGenerated
	if rm.Cached {
		outcome = outcomeCached
	}
	s.metrics.recordRoadmap(outcome, elapsed)
	return s.render(c, http.StatusOK, s.newPage(cur))
}

func (s *Server) handleDownload(c echo.Context) error {
	st := s.state(c)
	if st.Roadmap == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no roadmap has been generated")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", RoadmapFileName))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(st.Roadmap.Markdown+"\n"))
}

// handleScenarioAPI projects a scenario from query parameters without
// touching the session. Missing parameters take the configured defaults.
func (s *Server) handleScenarioAPI(c echo.Context) error {
	profile, in, err := parseForm(c.QueryParams(), s.config.Profile, s.config.Defaults)
	if err == nil {
		err = errors.Join(in.Validate(), validBaselineYear(profile.BaselineYear))
	}
	if err != nil {
		s.metrics.recordScenario(false)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.metrics.recordScenario(true)
	return c.JSON(http.StatusOK, scenario.NewReport(in, profile.BaselineYear, scenario.Project(in)))
}

func (s *Server) handleHealth(c echo.Context) error {
	uptime := time.Since(s.startTime)
	return c.JSON(http.StatusOK, map[string]any{
		"status":         "healthy",
		"version":        s.config.Version,
		"sessions":       s.sessions.Len(),
		"uptime_seconds": uptime.Seconds(),
		"timestamp":      time.Now().Format(time.RFC3339),
	})
}

func validBaselineYear(year int) error {
	return company.Profile{
		Industry:      company.Industries[0],
		Employees:     company.HeadcountBands[0],
		BaselineYear:  year,
		SavingLaw:     company.SavingLawStatuses[0],
		EmissionShape: company.EmissionProfiles[0],
	}.Validate()
}

// parseForm overlays the submitted values on the given profile and input.
// Fields absent from values keep their current value; multi-choice fields
// are replaced whenever the form carries the text fields, since unchecked
// boxes are not submitted at all.
func parseForm(values url.Values, profile company.Profile, in scenario.Input) (company.Profile, scenario.Input, error) {
	var errs []error

	number := func(key, label string, dst *float64) {
		if !values.Has(key) {
			return
		}
		raw := strings.ReplaceAll(strings.TrimSpace(values.Get(key)), ",", "")
		if raw == "" {
			*dst = 0
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", label, values.Get(key)))
			return
		}
		*dst = v
	}
	integer := func(key, label string, dst *int) {
		if !values.Has(key) {
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(values.Get(key)))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a whole number", label, values.Get(key)))
			return
		}
		*dst = v
	}
	text := func(key string, dst *string) {
		if values.Has(key) {
			*dst = values.Get(key)
		}
	}

	number("scope1", "Scope 1 emissions", &in.Scope1)
	number("scope2", "Scope 2 emissions", &in.Scope2)
	number("growth", "Annual growth rate", &in.GrowthRatePercent)
	number("reduction", "Target reduction", &in.ReductionRatePercent)
	integer("years", "Years to target", &in.HorizonYears)
	integer("baseline_year", "Baseline year", &profile.BaselineYear)

	text("industry", &profile.Industry)
	text("employees", &profile.Employees)
	text("saving_law", &profile.SavingLaw)
	text("emission_profile", &profile.EmissionShape)
	text("notes", &profile.Notes)

	if values.Has("industry") || values.Has("sources") {
		profile.Sources = values["sources"]
	}
	if values.Has("industry") || values.Has("equipment") {
		profile.Equipment = values["equipment"]
	}

	return profile, in, errors.Join(errs...)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
