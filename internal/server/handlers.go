package server

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

type strategiesRequest struct {
	DreamAmount decimal.Decimal `json:"dreamAmount"`
	TargetDate  string          `json:"targetDate"`
}

func (s *Server) handleStrategies(ctx *fasthttp.RequestCtx) {
	var req strategiesRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	targetDate, err := domain.ParseDate(req.TargetDate)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "targetDate must be yyyy-MM-dd")
		return
	}

	set, err := s.savings.CalculateStrategies(req.DreamAmount, targetDate, time.Now())
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

type targetDateRequest struct {
	DreamAmount  decimal.Decimal `json:"dreamAmount"`
	DailySavings decimal.Decimal `json:"dailySavings"`
}

func (s *Server) handleTargetDate(ctx *fasthttp.RequestCtx) {
	var req targetDateRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.savings.CalculateTargetDate(req.DreamAmount, req.DailySavings, time.Now())
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type milestonesRequest struct {
	DreamAmount   decimal.Decimal `json:"dreamAmount"`
	StartDate     string          `json:"startDate,omitempty"`
	TargetDate    string          `json:"targetDate"`
	CurrentAmount decimal.Decimal `json:"currentAmount,omitempty"`
}

func (req *milestonesRequest) dates() (time.Time, time.Time, error) {
	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := domain.ParseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("startDate must be yyyy-MM-dd")
		}
		startDate = parsed
	}
	targetDate, err := domain.ParseDate(req.TargetDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("targetDate must be yyyy-MM-dd")
	}
	return startDate, targetDate, nil
}

func (s *Server) handleMilestones(ctx *fasthttp.RequestCtx) {
	var req milestonesRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	startDate, targetDate, err := req.dates()
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	set, err := calculation.CalculateMilestones(req.DreamAmount, startDate, targetDate)
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

func (s *Server) handleMilestoneProgress(ctx *fasthttp.RequestCtx) {
	var req milestonesRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	startDate, targetDate, err := req.dates()
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	set, err := calculation.CalculateMilestones(req.DreamAmount, startDate, targetDate)
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculation.CheckMilestoneProgress(set, req.CurrentAmount))
}

func (s *Server) handleRetirement(ctx *fasthttp.RequestCtx) {
	var input calculation.RetirementInput
	if err := decodeBody(ctx, &input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.retirement.CalculateTotalRetirementNeed(input, time.Now())
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type incomeRequest struct {
	Income        domain.IncomeData           `json:"income"`
	Debts         []domain.Debt               `json:"debts,omitempty"`
	FixedExpenses domain.FixedExpenses        `json:"fixedExpenses,omitempty"`
	Options       calculation.AnalysisOptions `json:"options,omitempty"`
}

func (s *Server) handleIncome(ctx *fasthttp.RequestCtx) {
	var req incomeRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.income.Analyze(req.Income, req.Debts, req.FixedExpenses, req.Options)
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type projectionRequest struct {
	Profile domain.FinancialProfile        `json:"profile"`
	Goals   domain.Goals                   `json:"goals"`
	Options *calculation.ProjectionOptions `json:"options,omitempty"`
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := calculation.DefaultProjectionOptions()
	if req.Options != nil {
		opts = *req.Options
		if opts.Simulations <= 0 {
			opts.Simulations = calculation.DefaultProjectionOptions().Simulations
		}
	}

	result, err := s.projection.RunSomedayProjection(ctx, req.Profile, req.Goals, opts)
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type bucketAllocateRequest struct {
	AvailableMonthly decimal.Decimal         `json:"availableMonthly"`
	Profile          domain.FinancialProfile `json:"profile"`
	Dream            *domain.Dream           `json:"dream,omitempty"`
	YearsToGoal      int                     `json:"yearsToGoal,omitempty"`
	RetirementAge    int                     `json:"retirementAge,omitempty"`
	Strategy         string                  `json:"strategy,omitempty"`
	Compare          bool                    `json:"compare,omitempty"`
}

func (s *Server) handleBucketAllocate(ctx *fasthttp.RequestCtx) {
	var req bucketAllocateRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input := calculation.AllocationInput{
		AvailableMonthly: req.AvailableMonthly,
		Profile:          req.Profile,
		Dream:            req.Dream,
		YearsToGoal:      req.YearsToGoal,
		RetirementAge:    req.RetirementAge,
	}

	if req.Compare {
		results, err := s.buckets.CompareStrategies(input)
		if err != nil {
			writeCalcError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, results)
		return
	}

	strategy := calculation.BucketStrategy(req.Strategy)
	if req.Strategy == "" {
		strategy = calculation.StrategyBalanced
	}
	result, err := s.buckets.AllocateFunds(input, strategy)
	if err != nil {
		writeCalcError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type bucketRecomputeRequest struct {
	Allocation       domain.BucketAllocation `json:"allocation"`
	Changed          string                  `json:"changed"`
	NewValue         decimal.Decimal         `json:"newValue"`
	MinFoundationPct decimal.Decimal         `json:"minFoundationPct"`
}

func (s *Server) handleBucketRecompute(ctx *fasthttp.RequestCtx) {
	var req bucketRecomputeRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	changed := domain.BucketName(req.Changed)
	switch changed {
	case domain.BucketFoundation, domain.BucketDream, domain.BucketLife:
	default:
		writeError(ctx, fasthttp.StatusBadRequest, "changed must be 'foundation', 'dream', or 'life'")
		return
	}

	result := s.buckets.Recompute(req.Allocation, changed, req.NewValue, req.MinFoundationPct)
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type equivalentsRequest struct {
	DailyAmount decimal.Decimal `json:"dailyAmount"`
}

func (s *Server) handleEquivalents(ctx *fasthttp.RequestCtx) {
	var req equivalentsRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculation.ConvertToLifeEquivalents(req.DailyAmount))
}

func (s *Server) handleCrisis(ctx *fasthttp.RequestCtx, name string) {
	crisisType, err := calculation.ParseCrisisType(name)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}

	var response *calculation.CrisisResponse
	switch crisisType {
	case calculation.CrisisJobLoss:
		var params calculation.JobLossParams
		if err := decodeBody(ctx, &params); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		response = s.crisis.JobLoss(params)
	case calculation.CrisisMedicalEmergency:
		var params calculation.MedicalEmergencyParams
		if err := decodeBody(ctx, &params); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		response = s.crisis.MedicalEmergency(params)
	case calculation.CrisisRelationshipChange:
		var params calculation.RelationshipChangeParams
		if err := decodeBody(ctx, &params); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		response = s.crisis.RelationshipChange(params)
	}
	writeJSON(ctx, fasthttp.StatusOK, response)
}

// writeCalcError maps engine errors onto HTTP statuses. Validation
// errors surface as 400s, anything else as a 500.
func writeCalcError(ctx *fasthttp.RequestCtx, err error) {
	var goalErr *calculation.InvalidGoalError
	var retirementErr *calculation.InvalidRetirementInputError
	var incomeErr *calculation.InvalidIncomeError
	switch {
	case errors.As(err, &goalErr),
		errors.As(err, &retirementErr),
		errors.As(err, &incomeErr):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}
