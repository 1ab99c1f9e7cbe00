package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/komsit37/invest/pkg/invest/columns"
	"github.com/komsit37/invest/pkg/invest/growth"
	"github.com/komsit37/invest/pkg/invest/pipeline"
	"github.com/komsit37/invest/pkg/invest/portfolio"
	"github.com/komsit37/invest/pkg/invest/rebalance"
	"github.com/komsit37/invest/pkg/invest/risk"
	"github.com/komsit37/invest/pkg/invest/screen"
	"github.com/komsit37/invest/pkg/invest/types"
)

type growthRequest struct {
	InitialInvestment   float64 `json:"initialInvestment"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualReturn        float64 `json:"annualReturn"`
	Years               *int    `json:"years"`
}

type growthResponse struct {
	Points    []types.GrowthPoint    `json:"points"`
	Summary   types.GrowthSummary    `json:"summary"`
	Scenarios []types.ScenarioResult `json:"scenarios"`
}

type allocationRequest struct {
	Allocation []types.AllocationEntry `json:"allocation"`
}

type riskResponse struct {
	Metrics types.RiskMetrics  `json:"metrics"`
	Label   string             `json:"label"`
	Rules   []types.RuleResult `json:"rules"`
}

type rebalanceRequest struct {
	Allocation []types.AllocationEntry `json:"allocation"`
	Index      int                     `json:"index"`
	Percentage float64                 `json:"percentage"`
}

type screenRequest struct {
	Filters *types.ScreeningFilters `json:"filters"`
	Preset  string                  `json:"preset"`
	Query   string                  `json:"query"`
	Columns []string                `json:"columns"`
}

type stockView struct {
	types.StockRecord
	Recommendation types.Recommendation `json:"recommendation"`
	Band           columns.Band         `json:"band"`
	Display        map[string]string    `json:"display"`
}

type screenResponse struct {
	Dataset string                 `json:"dataset"`
	Filters types.ScreeningFilters `json:"filters"`
	Columns []string               `json:"columns"`
	Count   int                    `json:"count"`
	Stocks  []stockView            `json:"stocks"`
}

type screenPreset struct {
	Name    string                 `json:"name"`
	Filters types.ScreeningFilters `json:"filters"`
}

type reportRequest struct {
	portfolio.State
	Preset string `json:"preset"`
}

type thesisRequest struct {
	Ticker string `json:"ticker"`
	Market string `json:"market"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if !s.decode(w, r, &req) {
		return
	}
	years := s.growthYears
	if req.Years != nil {
		years = *req.Years
	}
	points, err := growth.Project(req.InitialInvestment, req.MonthlyContribution, req.AnnualReturn, years)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, growthResponse{
		Points:    points,
		Summary:   growth.Summarize(points),
		Scenarios: growth.Scenarios(req.InitialInvestment, req.MonthlyContribution, years),
	})
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	var req allocationRequest
	if !s.decode(w, r, &req) {
		return
	}
	m, err := risk.Compute(req.Allocation)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, riskResponse{Metrics: m, Label: risk.Label(m.OverallRisk), Rules: risk.Rules(req.Allocation, m)})
}

func (s *Server) handleRebalance(w http.ResponseWriter, r *http.Request) {
	var req rebalanceRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := rebalance.Rebalance(req.Allocation, req.Index, req.Percentage)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, allocationRequest{Allocation: out})
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	// partial filters are merged onto the defaults
	defaults := screen.DefaultFilters()
	req := screenRequest{Filters: &defaults}
	if !s.decode(w, r, &req) {
		return
	}
	f := screen.DefaultFilters()
	switch {
	case req.Preset != "":
		pf, err := screen.PresetFilters(req.Preset)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		f = pf
	case req.Filters != nil:
		f = *req.Filters
	}

	res, err := s.screener.Screen(r.Context(), s.datasetSpec, pipeline.ExecuteOptions{
		Filters: f,
		Query:   req.Query,
		Columns: req.Columns,
		Latency: s.screenLatency,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	views := make([]stockView, 0, len(res.Stocks))
	for _, st := range res.Stocks {
		views = append(views, stockView{
			StockRecord:    st,
			Recommendation: columns.RecommendRecord(st),
			Band:           columns.BandOf(st.Return12M),
			Display:        columns.Row(res.Columns, st),
		})
	}
	s.writeJSON(w, http.StatusOK, screenResponse{Dataset: res.Name, Filters: f, Columns: res.Columns, Count: len(views), Stocks: views})
}

func (s *Server) handleScreenPresets(w http.ResponseWriter, r *http.Request) {
	out := make([]screenPreset, 0, len(screen.Presets))
	for _, name := range screen.PresetNames() {
		f, err := screen.PresetFilters(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out = append(out, screenPreset{Name: name, Filters: f})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePortfolioDefault(w http.ResponseWriter, r *http.Request) {
	st := portfolio.Default()
	st.Years = s.growthYears
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePortfolioPresets(w http.ResponseWriter, r *http.Request) {
	out := make([]rebalance.Strategy, 0, len(rebalance.Presets))
	for _, k := range rebalance.PresetKeys() {
		out = append(out, rebalance.Presets[k])
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePortfolioReport(w http.ResponseWriter, r *http.Request) {
	req := reportRequest{State: portfolio.Default()}
	req.Years = s.growthYears
	if !s.decode(w, r, &req) {
		return
	}
	st := req.State
	if req.Preset != "" {
		var err error
		if st, err = st.WithPreset(req.Preset); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	rep, err := portfolio.Report(st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleThesis(w http.ResponseWriter, r *http.Request) {
	var req thesisRequest
	if !s.decode(w, r, &req) {
		return
	}
	rec, err := s.thesis.Generate(r.Context(), req.Ticker, req.Market)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// HTTP helpers

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, r, fmt.Errorf("%w: invalid request body: %v", types.ErrInvalidArgument, err))
		return false
	}
	return true
}

// statusFor maps engine error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUndefined):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	ev := s.log.Warn()
	if status >= http.StatusInternalServerError {
		ev = s.log.Error()
	}
	ev.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	s.writeError(w, status, err.Error())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
