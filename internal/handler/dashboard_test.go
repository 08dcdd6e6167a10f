package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/handler"
)

// mockDashboardServicer is a hand-written test double for handler.DashboardServicer.
type mockDashboardServicer struct {
	stats func() (domain.DashboardStats, error)
}

func (m *mockDashboardServicer) Stats(_ context.Context) (domain.DashboardStats, error) {
	return m.stats()
}

var _ handler.DashboardServicer = (*mockDashboardServicer)(nil)

func TestDashboardStats_OK(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Dashboard: &mockDashboardServicer{
		stats: func() (domain.DashboardStats, error) {
			return domain.DashboardStats{
				ActiveVisitors: 3,
				TodayVisitors:  7,
				TodaySchedules: 2,
				ActiveTrips:    1,
				TodayTrips:     4,
			}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/dashboard/stats", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"active_visitors": 3,
		"today_visitors": 7,
		"today_schedules": 2,
		"active_trips": 1,
		"today_trips": 4
	}`, rec.Body.String())
}

func TestDashboardStats_ServiceError(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Dashboard: &mockDashboardServicer{
		stats: func() (domain.DashboardStats, error) {
			return domain.DashboardStats{}, errors.New("connection refused")
		},
	}})

	rec := doRequest(h, http.MethodGet, "/dashboard/stats", porteiroToken, "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal detail must not leak to the client.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
