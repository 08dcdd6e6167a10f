package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/handler"
)

// mockReportServicer is a hand-written test double for handler.ReportServicer.
type mockReportServicer struct {
	buildReport     func(ctx context.Context, date time.Time) (domain.DailyReport, error)
	saveObservation func(ctx context.Context, date time.Time, observation, porterName string) (domain.DailyObservation, error)
}

func (m *mockReportServicer) BuildReport(ctx context.Context, date time.Time) (domain.DailyReport, error) {
	return m.buildReport(ctx, date)
}
func (m *mockReportServicer) SaveObservation(ctx context.Context, date time.Time, observation, porterName string) (domain.DailyObservation, error) {
	return m.saveObservation(ctx, date, observation, porterName)
}

var _ handler.ReportServicer = (*mockReportServicer)(nil)

// emptyReportServicer returns an empty report for any date.
func emptyReportServicer() *mockReportServicer {
	return &mockReportServicer{
		buildReport: func(_ context.Context, date time.Time) (domain.DailyReport, error) {
			return domain.DailyReport{
				Date:      date.Format(domain.DateLayout),
				Visitors:  []domain.Visitor{},
				Fleet:     []domain.FleetTrip{},
				Schedules: []domain.Schedule{},
			}, nil
		},
	}
}

// ---- GET /reports/daily ----------------------------------------------------

func TestDailyReport_EmptyDay(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Reports: emptyReportServicer()})

	rec := doRequest(h, http.MethodGet, "/reports/daily?date=2026-08-15", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Date      string            `json:"date"`
		Visitors  []domain.Visitor  `json:"visitors"`
		Fleet     []json.RawMessage `json:"fleet"`
		Schedules []domain.Schedule `json:"schedules"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "2026-08-15", got.Date)
	assert.NotNil(t, got.Visitors, "empty sections serialize as [], not null")
	assert.NotNil(t, got.Fleet)
	assert.NotNil(t, got.Schedules)
}

func TestDailyReport_FleetCarriesDerivedFields(t *testing.T) {
	arrival := 12451.0
	h := newTestHandler(t, handler.Deps{Reports: &mockReportServicer{
		buildReport: func(_ context.Context, _ time.Time) (domain.DailyReport, error) {
			return domain.DailyReport{
				Date:      "2026-08-15",
				Visitors:  []domain.Visitor{},
				Fleet:     []domain.FleetTrip{{DriverName: "João Mendes", DepartureKm: 12400.5, ArrivalKm: &arrival}},
				Schedules: []domain.Schedule{},
			}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/reports/daily", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Fleet []tripJSON `json:"fleet"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Fleet, 1)
	assert.Equal(t, domain.TripStatusReturned, got.Fleet[0].Status)
	require.NotNil(t, got.Fleet[0].Distance)
	assert.Equal(t, 50.5, *got.Fleet[0].Distance)
}

func TestDailyReport_BadDate(t *testing.T) {
	h := newTestHandler(t, handler.Deps{})

	rec := doRequest(h, http.MethodGet, "/reports/daily?date=yesterday", porteiroToken, "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- POST /reports/observation ---------------------------------------------

func TestSaveObservation_OK(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Reports: &mockReportServicer{
		saveObservation: func(_ context.Context, date time.Time, observation, porterName string) (domain.DailyObservation, error) {
			assert.Equal(t, "2026-08-15", date.Format(domain.DateLayout))
			return domain.DailyObservation{Date: date, Observation: observation, PorterName: porterName}, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/reports/observation?date=2026-08-15", porteiroToken,
		`{"observation":"portão lateral travado","porter_name":"Marcos"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DailyObservation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "portão lateral travado", got.Observation)
	assert.Equal(t, "Marcos", got.PorterName)
}

// ---- GET /reports/export/* -------------------------------------------------

func TestExportExcel_Headers(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Reports: emptyReportServicer()})

	rec := doRequest(h, http.MethodGet, "/reports/export/excel?date=2026-08-15", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=relatorio_2026-08-15.xlsx",
		rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestExportPDF_Headers(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Reports: emptyReportServicer()})

	rec := doRequest(h, http.MethodGet, "/reports/export/pdf?date=2026-08-15", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=relatorio_2026-08-15.pdf",
		rec.Header().Get("Content-Disposition"))
	assert.True(t, len(rec.Body.Bytes()) > 0)
}

// Export links open in a new tab, so the token arrives as a query parameter.
func TestExportExcel_QueryParamToken(t *testing.T) {
	h := newTestHandler(t, handler.Deps{Reports: emptyReportServicer()})

	rec := doRequest(h, http.MethodGet,
		"/reports/export/excel?date=2026-08-15&authorization="+porteiroToken, "", "")

	require.Equal(t, http.StatusOK, rec.Code)
}
