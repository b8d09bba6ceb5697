package ui

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"godist/adapters/source"
	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
)

var contentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

type formatter interface {
	Format() string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Persistent": a.describe.Persistent(),
		"Policy":     a.policy.String(),
	}
	if a.describe.Persistent() {
		reports, err := a.describe.List(r.Context(), 20)
		if err != nil {
			a.logger.Warn("[UI] failed to list reports: %v", err)
		}
		data["Reports"] = reports
	}
	a.renderTemplate(w, "index.html", data)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"persistence": a.describe.Persistent(),
	})
}

// handleDescribe computes the report of the JSON array at ?path=
// (default "sample"). The report name comes from ?name= or the body's
// "name" field.
func (a *App) handleDescribe(w http.ResponseWriter, r *http.Request) {
	rep, err := a.describeRequest(w, r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleDescribeHTML accepts the JSON body of /api/describe or a form with
// a "values" field
func (a *App) handleDescribeHTML(w http.ResponseWriter, r *http.Request) {
	rep, err := a.describeRequest(w, r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := a.reports.HTML(&buf, rep); err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := stats.ParseChartKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.writeError(w, errors.InvalidInput("unknown chart", err))
		return
	}
	rep, err := a.describeRequest(w, r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeChart(w, r.Context(), kind, rep)
}

func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			a.writeError(w, errors.InvalidInput("limit must be a non-negative integer", err))
			return
		}
		limit = n
	}
	summaries, err := a.describe.List(r.Context(), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []stats.ReportSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := a.storedReport(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *App) handleReportChart(w http.ResponseWriter, r *http.Request) {
	kind, err := stats.ParseChartKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.writeError(w, errors.InvalidInput("unknown chart", err))
		return
	}
	rep, err := a.storedReport(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeChart(w, r.Context(), kind, rep)
}

func (a *App) storedReport(r *http.Request) (*stats.Report, error) {
	id, err := core.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, errors.InvalidInput("invalid report id", err)
	}
	return a.describe.Get(r.Context(), id)
}

func (a *App) describeRequest(w http.ResponseWriter, r *http.Request) (*stats.Report, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.InvalidInput("failed to read request body", err)
	}

	name := r.URL.Query().Get("name")
	var col stats.Column

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err := r.ParseForm(); err != nil {
			return nil, errors.InvalidInput("invalid form", err)
		}
		if name == "" {
			name = r.PostForm.Get("name")
		}
		col, err = source.NewArgsSource([]string{r.PostForm.Get("values")}).Read(r.Context())
	} else {
		if name == "" {
			name = gjson.GetBytes(body, "name").String()
		}
		col, err = source.ParseJSONSample(body, jsonPath(r))
	}
	if err != nil {
		return nil, err
	}

	return a.describe.Describe(r.Context(), name, col.Values)
}

func jsonPath(r *http.Request) string {
	if path := r.URL.Query().Get("path"); path != "" {
		return path
	}
	return source.DefaultJSONPath
}

func (a *App) writeChart(w http.ResponseWriter, ctx context.Context, kind stats.ChartKind, rep *stats.Report) {
	if err := a.chartSem.Acquire(ctx, 1); err != nil {
		a.writeError(w, err)
		return
	}
	defer a.chartSem.Release(1)

	var buf bytes.Buffer
	if err := a.charts.Render(&buf, kind, rep); err != nil {
		a.writeError(w, err)
		return
	}

	contentType := "image/png"
	if f, ok := a.charts.(formatter); ok {
		if ct, known := contentTypes[f.Format()]; known {
			contentType = ct
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses
func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case code == errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case code == errors.CodeNotFound:
		status = http.StatusNotFound
	case stderrors.Is(err, core.ErrPersistenceOff):
		status = http.StatusServiceUnavailable
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("[UI] request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}
