package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"prepay-sim/domain"
	"prepay-sim/report"
	"prepay-sim/service"
)

type SweepHandler struct {
	service *service.SweepService
	logger  logrus.FieldLogger
}

func NewSweepHandler(service *service.SweepService, logger logrus.FieldLogger) *SweepHandler {
	return &SweepHandler{service: service, logger: logger}
}

func (h *SweepHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sweep", h.Sweep).Methods(http.MethodPost)
	r.HandleFunc("/sweep/{id}", h.GetReport).Methods(http.MethodGet)
	r.HandleFunc("/sweep/{id}/pdf", h.GetReportPDF).Methods(http.MethodGet)
}

// Sweep simulates every prepayment month for the posted parameters.
func (h *SweepHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	var params domain.ScenarioParams
	if !decodeJSON(w, r, h.logger, &params) {
		return
	}

	result, err := h.service.Sweep(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, result.ID))
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *SweepHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.SweepReport, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return domain.SweepReport{}, false
	}

	result, ok := h.service.Report(id)
	if !ok {
		http.Error(w, "report not found", http.StatusNotFound)
		return domain.SweepReport{}, false
	}
	return result, true
}

func (h *SweepHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *SweepHandler) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, result); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sweep-%s.pdf\"", result.ID))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WithError(err).Warn("failed to write pdf")
	}
}
