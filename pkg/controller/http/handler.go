package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

const maxBodySize = 1 << 16

type handler struct {
	dashboard interfaces.Dashboard
	renderers map[string]ChartRenderer
}

type rangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type weekRequest struct {
	Week string `json:"week"`
}

type datasetResponse struct {
	ID       types.DatasetID  `json:"id"`
	Records  int              `json:"records"`
	Report   model.LoadReport `json:"report"`
	LoadedAt time.Time        `json:"loaded_at"`
}

func newDatasetResponse(ds *model.Dataset) datasetResponse {
	return datasetResponse{
		ID:       ds.ID,
		Records:  ds.Len(),
		Report:   ds.Report,
		LoadedAt: ds.LoadedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagInvalidSelection))
	}
	return nil
}

func (h *handler) handleViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.dashboard.Views(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, views)
}

func (h *handler) handleSetRange(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	start, err := model.ParseSelectionTime(req.Start)
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "invalid range start", goerr.T(model.ErrTagInvalidSelection)))
		return
	}
	end, err := model.ParseSelectionTime(req.End)
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "invalid range end", goerr.T(model.ErrTagInvalidSelection)))
		return
	}

	views, err := h.dashboard.SetRange(r.Context(), start, end)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, views)
}

func (h *handler) handleSetWeek(w http.ResponseWriter, r *http.Request) {
	var req weekRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	key, err := types.ParseWeekKey(req.Week)
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "invalid week", goerr.T(model.ErrTagInvalidSelection)))
		return
	}

	views, err := h.dashboard.SetWeek(r.Context(), key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, views)
}

func (h *handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := h.dashboard.Dataset(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, newDatasetResponse(ds))
}

func (h *handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.dashboard.Reload(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, newDatasetResponse(ds))
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	format := chi.URLParam(r, "format")

	renderer, ok := h.renderers[format]
	if !ok {
		writeError(w, goerr.New("unsupported chart format", goerr.V("format", format)), http.StatusNotFound)
		return
	}

	views, err := h.dashboard.Views(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	switch view {
	case "bar":
		err = renderer.RenderBar(&buf, &views.Bar)
	case "scatter":
		err = renderer.RenderScatter(&buf, &views.Scatter)
	case "pie":
		err = renderer.RenderPie(&buf, &views.Pie)
	default:
		writeError(w, goerr.New("unknown chart", goerr.V("view", view)), http.StatusNotFound)
		return
	}

	if errors.Is(err, model.ErrEmptyView) {
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "failed to render chart", goerr.V("view", view), goerr.V("format", format)))
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write chart", "error", err, "view", view)
	}
}
