package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mkt-tools/ga-insight/pkg/adapters"
	"github.com/mkt-tools/ga-insight/pkg/export/excel"
	"github.com/mkt-tools/ga-insight/pkg/models/api"
	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/report"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service runs report pipelines for one authenticated property.
type Service interface {
	Monthly(ctx context.Context, params report.MonthlyParams) (*domain.MonthlyReport, error)
	Weekly(ctx context.Context, params report.WeeklyParams) (*domain.WeeklyReport, error)
}

// ServiceFactory authenticates the supplied key and returns a Service bound
// to the property. Credentials are per-request; nothing is cached.
type ServiceFactory func(ctx context.Context, propertyID string, credentials []byte) (Service, error)

type Handler struct {
	newService ServiceFactory
}

func NewHandler(factory ServiceFactory) *Handler {
	return &Handler{newService: factory}
}

// Monthly runs the monthly flow and streams the workbook back as an
// attachment.
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.MonthlyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	params, err := monthlyParams(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	svc, err := h.newService(ctx, req.PropertyID, req.Credentials)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	rep, err := svc.Monthly(ctx, params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	h.sendWorkbook(w, r, excel.MonthlyFileName, func(rp *excel.Reporter) error {
		return rp.HandleMonthly(rep)
	})
}

// Weekly runs the weekly comparison flow and streams the workbook back.
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.WeeklyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	params, err := weeklyParams(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	svc, err := h.newService(ctx, req.PropertyID, req.Credentials)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	rep, err := svc.Weekly(ctx, params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	h.sendWorkbook(w, r, excel.WeeklyFileName, func(rp *excel.Reporter) error {
		return rp.HandleWeekly(rep)
	})
}

// ListMetrics exposes the metric catalog.
func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, adapters.MapMetricsDomainToApi(domain.Metrics))
}

// ListChannels exposes the channel catalog.
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, domain.Channels)
}

func monthlyParams(req api.MonthlyReportRequest) (report.MonthlyParams, error) {
	start, err := adapters.ParseDate("start_date", req.StartDate)
	if err != nil {
		return report.MonthlyParams{}, err
	}
	end, err := adapters.ParseDate("end_date", req.EndDate)
	if err != nil {
		return report.MonthlyParams{}, err
	}
	metrics, err := adapters.MapMetricNames(req.Metrics, domain.DefaultMetrics())
	if err != nil {
		return report.MonthlyParams{}, err
	}
	return report.MonthlyParams{
		Start:   start,
		End:     end,
		Metrics: metrics,
		Channel: req.Channel,
	}, nil
}

func weeklyParams(req api.WeeklyReportRequest) (report.WeeklyParams, error) {
	thisStart, err := adapters.ParseDate("this_week_start", req.ThisWeekStart)
	if err != nil {
		return report.WeeklyParams{}, err
	}
	thisEnd, err := adapters.ParseDate("this_week_end", req.ThisWeekEnd)
	if err != nil {
		return report.WeeklyParams{}, err
	}
	prevStart, err := adapters.ParseDate("prev_week_start", req.PrevWeekStart)
	if err != nil {
		return report.WeeklyParams{}, err
	}
	prevEnd, err := adapters.ParseDate("prev_week_end", req.PrevWeekEnd)
	if err != nil {
		return report.WeeklyParams{}, err
	}

	metrics, err := adapters.MapMetricNames(req.Metrics, domain.DefaultWeeklyMetrics())
	if err != nil {
		return report.WeeklyParams{}, err
	}

	channels := req.Channels
	if len(channels) == 0 {
		channels = domain.DefaultChannels()
	}

	return report.WeeklyParams{
		ThisWeek: domain.Period{Label: domain.ThisWeekLabel, Start: thisStart, End: thisEnd},
		PrevWeek: domain.Period{Label: domain.PrevWeekLabel, Start: prevStart, End: prevEnd},
		Metrics:  metrics,
		Channels: channels,
	}, nil
}

// sendWorkbook renders into a buffer first so a failed render can still
// produce a JSON error instead of a truncated attachment.
func (h *Handler) sendWorkbook(w http.ResponseWriter, r *http.Request, filename string, render func(*excel.Reporter) error) {
	var buf bytes.Buffer
	if err := render(excel.NewReporter(&buf)); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to render report: %w", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write workbook response")
	}
}

func statusFor(err error) int {
	var (
		missing  *domain.MissingInputError
		badRange *domain.InvalidRangeError
		cred     *domain.CredentialError
	)
	switch {
	case errors.As(err, &missing), errors.As(err, &badRange):
		return http.StatusBadRequest
	case errors.As(err, &cred):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
