package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/domain"
	"github.com/storekeep/adminapi/internal/reports"
	"github.com/storekeep/adminapi/internal/session"
)

type fakeReportsAPI struct {
	rows     []domain.SummaryRow
	err      error
	lastFrom string
	lastTo   string
}

func (f *fakeReportsAPI) SalesSummary(_ context.Context, _, from, to string) ([]domain.SummaryRow, error) {
	f.lastFrom, f.lastTo = from, to
	return f.rows, f.err
}

func newReportsRouter(t *testing.T, api *fakeReportsAPI) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cfg := testSessionConfig()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sess-1",
		domain.Credential{Token: "tok"}, time.Hour))

	router := gin.New()
	router.Use(middleware.SessionAuth(store, cfg.CookieName, logger))
	router.GET("/v1/reports/summary", HandleSummary(api, logger))
	router.GET("/v1/reports/chart", HandleChart(api, logger))
	return router, &http.Cookie{Name: cfg.CookieName, Value: "sess-1"}
}

func TestHandleSummary(t *testing.T) {
	api := &fakeReportsAPI{rows: []domain.SummaryRow{
		{Date: "2026-08-01", Revenue: 100, SalesCount: 2},
		{Date: "2026-08-02", Revenue: 50, SalesCount: 1},
	}}
	router, cookie := newReportsRouter(t, api)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/summary?from=2026-08-01&to=2026-08-31", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "2026-08-01", api.lastFrom)
	require.Equal(t, "2026-08-31", api.lastTo)

	var body struct {
		KPI  reports.KPI         `json:"kpi"`
		Rows []domain.SummaryRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.InDelta(t, 150.0, body.KPI.TotalRevenue, 1e-9)
	require.Equal(t, 3, body.KPI.SalesCount)
	require.InDelta(t, 50.0, body.KPI.AverageSale, 1e-9)
	require.Len(t, body.Rows, 2)
}

func TestHandleChart(t *testing.T) {
	api := &fakeReportsAPI{rows: []domain.SummaryRow{
		{Date: "2026-08-01", Revenue: 100, SalesCount: 2},
		{Date: "2026-08-02", Revenue: 50, SalesCount: 1},
	}}
	router, cookie := newReportsRouter(t, api)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/chart", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Series reports.Series `json:"series"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, []string{"2026-08-01", "2026-08-02"}, body.Series.Labels)
	require.Equal(t, []float64{100, 50}, body.Series.Revenue)
	require.Equal(t, []int{2, 1}, body.Series.Counts)
}
