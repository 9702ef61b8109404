package server

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

func doRequest(t *testing.T, s *Server, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.Handler(ctx)
	return ctx
}

func decodeResponse(t *testing.T, ctx *fasthttp.RequestCtx, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v))
}

func TestHealthz(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "GET", "/healthz", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var body map[string]string
	decodeResponse(t, ctx, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestStrategiesEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/strategies",
		`{"dreamAmount":"36500","targetDate":"2030-01-01"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var set calculation.StrategySet
	decodeResponse(t, ctx, &set)
	assert.Equal(t, "Aggressive", set.Aggressive.Name)
	assert.True(t, set.Aggressive.DailyAmount.GreaterThan(set.Balanced.DailyAmount))
	assert.True(t, set.Metadata.DreamAmount.Equal(decimal.NewFromInt(36500)))
	assert.Positive(t, set.Metadata.BaseDays)
}

func TestStrategiesValidation(t *testing.T) {
	s := New(nil)

	ctx := doRequest(t, s, "POST", "/v1/strategies",
		`{"dreamAmount":"0","targetDate":"2030-01-01"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = doRequest(t, s, "POST", "/v1/strategies",
		`{"dreamAmount":"1000","targetDate":"not-a-date"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = doRequest(t, s, "POST", "/v1/strategies", `{bad json`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestMilestonesEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/milestones",
		`{"dreamAmount":"50000","startDate":"2025-01-01","targetDate":"2027-01-01"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var set calculation.MilestoneSet
	decodeResponse(t, ctx, &set)
	require.Len(t, set.Milestones, 5)
	assert.Equal(t, 10, set.Milestones[0].Percentage)
	assert.Equal(t, 90, set.Milestones[4].Percentage)
}

func TestMilestoneProgressEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/milestones/progress",
		`{"dreamAmount":"50000","startDate":"2025-01-01","targetDate":"2027-01-01","currentAmount":"25000"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var progress calculation.MilestoneProgress
	decodeResponse(t, ctx, &progress)
	assert.Equal(t, 3, progress.CompletedCount)
	require.NotNil(t, progress.NextMilestone)
	assert.Equal(t, 75, progress.NextMilestone.Percentage)
}

func TestRetirementEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/retirement",
		`{"annualExpenses":"60000","yearsUntilRetirement":30,"currentAge":35,"currentSavings":"50000"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result calculation.RetirementResult
	decodeResponse(t, ctx, &result)
	assert.False(t, result.RequiredPortfolioSize.IsZero())
	assert.Equal(t, 30, result.YearsUntilRetirement)
}

func TestRetirementValidation(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/retirement", `{"annualExpenses":"0"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestIncomeEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/income",
		`{"income":{"grossAnnualIncome":"85000","filingStatus":"single","state":"Colorado"}}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result calculation.IncomeAnalysisResult
	decodeResponse(t, ctx, &result)
	assert.True(t, result.Income.NetAnnual.IsPositive())
	assert.True(t, result.Income.NetAnnual.LessThan(result.Income.GrossAnnual))
}

func TestIncomeValidation(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/income", `{"income":{"grossAnnualIncome":"0"}}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestProjectionEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/projection",
		`{"profile":{"age":35,"monthlyIncome":"6000","monthlyExpenses":"4000","currentAssets":"50000"},
		  "goals":{"totalRequired":"500000","yearsToSomeday":20},
		  "options":{"simulations":200,"seed":42}}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result calculation.ProjectionResult
	decodeResponse(t, ctx, &result)
	assert.Equal(t, 200, result.ProjectionData.Simulations)
	assert.NotEmpty(t, result.Analysis.Confidence.Level)
}

func TestBucketAllocateEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/buckets/allocate",
		`{"availableMonthly":"2000",
		  "profile":{"age":30,"monthlyIncome":"6000","monthlyExpenses":"4000","currentAssets":"10000","emergencyFund":"24000"},
		  "strategy":"balanced"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result calculation.AllocationResult
	decodeResponse(t, ctx, &result)
	assert.Equal(t, calculation.StrategyBalanced, result.Strategy)
	assert.True(t, result.Total.IsPositive())
}

func TestBucketRecomputeEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/buckets/recompute",
		`{"allocation":{"foundation":"60","dream":"25","life":"15"},
		  "changed":"dream","newValue":"40","minFoundationPct":"25"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result domain.BucketAllocation
	decodeResponse(t, ctx, &result)
	assert.True(t, result.Dream.Equal(decimal.NewFromInt(40)))
	assert.InDelta(t, 100.0, result.Sum().InexactFloat64(), 0.1)
}

func TestBucketRecomputeBadBucket(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/buckets/recompute",
		`{"allocation":{"foundation":"60","dream":"25","life":"15"},"changed":"vacation","newValue":"40"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestEquivalentsEndpoint(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/equivalents", `{"dailyAmount":"5"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var equivalents []calculation.LifeEquivalent
	decodeResponse(t, ctx, &equivalents)
	assert.NotEmpty(t, equivalents)
}

func TestCrisisEndpoints(t *testing.T) {
	s := New(nil)

	ctx := doRequest(t, s, "GET", "/v1/crisis", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var types []calculation.CrisisTypeInfo
	decodeResponse(t, ctx, &types)
	assert.Len(t, types, 3)

	ctx = doRequest(t, s, "POST", "/v1/crisis/job-loss", `{}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var response calculation.CrisisResponse
	decodeResponse(t, ctx, &response)
	assert.Equal(t, calculation.CrisisJobLoss, response.Type)
	assert.NotEmpty(t, response.ImmediateActions)

	ctx = doRequest(t, s, "POST", "/v1/crisis/medical-emergency", `{"emergencyCost":"6000"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = doRequest(t, s, "POST", "/v1/crisis/alien-invasion", `{}`)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestUnknownPath(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "POST", "/v1/nonsense", `{}`)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(nil)
	ctx := doRequest(t, s, "GET", "/v1/strategies", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())

	var errResp ErrorResponse
	decodeResponse(t, ctx, &errResp)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, errResp.Status)
}
