// Package server exposes the planning engines over HTTP. All
// calculation endpoints accept JSON POST bodies and return JSON.
package server

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"dreamplan/internal/calculation"
)

// Server routes plan API requests to the calculation engines.
type Server struct {
	savings    *calculation.SavingsCalculator
	retirement *calculation.RetirementCalculator
	income     *calculation.IncomeAnalyzer
	buckets    *calculation.BucketAllocator
	projection *calculation.ProjectionEngine
	crisis     *calculation.CrisisEngine
	logger     calculation.Logger
}

// New creates a server wired to fresh engine instances.
func New(logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		savings:    calculation.NewSavingsCalculator(logger),
		retirement: calculation.NewRetirementCalculator(logger),
		income:     calculation.NewIncomeAnalyzer(logger),
		buckets:    calculation.NewBucketAllocator(logger),
		projection: calculation.NewProjectionEngine(logger),
		crisis:     calculation.NewCrisisEngine(logger),
		logger:     logger,
	}
}

// ListenAndServe starts the server on the given address and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("plan API listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handler)
}

// Handler is the root request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	if path == "/healthz" {
		s.handleHealth(ctx)
		return
	}
	if path == "/v1/crisis" && ctx.IsGet() {
		writeJSON(ctx, fasthttp.StatusOK, calculation.AvailableCrisisTypes())
		return
	}

	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch path {
	case "/v1/strategies":
		s.handleStrategies(ctx)
	case "/v1/target-date":
		s.handleTargetDate(ctx)
	case "/v1/milestones":
		s.handleMilestones(ctx)
	case "/v1/milestones/progress":
		s.handleMilestoneProgress(ctx)
	case "/v1/retirement":
		s.handleRetirement(ctx)
	case "/v1/income":
		s.handleIncome(ctx)
	case "/v1/projection":
		s.handleProjection(ctx)
	case "/v1/buckets/allocate":
		s.handleBucketAllocate(ctx)
	case "/v1/buckets/recompute":
		s.handleBucketRecompute(ctx)
	case "/v1/equivalents":
		s.handleEquivalents(ctx)
	default:
		if crisisType, ok := crisisPath(path); ok {
			s.handleCrisis(ctx, crisisType)
			return
		}
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("unknown path: %s", path))
	}
}

const crisisPrefix = "/v1/crisis/"

func crisisPath(path string) (string, bool) {
	if len(path) <= len(crisisPrefix) || path[:len(crisisPrefix)] != crisisPrefix {
		return "", false
	}
	return path[len(crisisPrefix):], true
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the JSON body returned for every error status.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

func decodeBody(ctx *fasthttp.RequestCtx, v interface{}) error {
	return json.Unmarshal(ctx.PostBody(), v)
}
