package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"prepay-sim/domain"
	"prepay-sim/service"
)

type ScenarioHandler struct {
	logger logrus.FieldLogger
}

type scheduleResponse struct {
	Result domain.ScenarioResult  `json:"result"`
	Months []domain.MonthSnapshot `json:"months"`
}

func NewScenarioHandler(logger logrus.FieldLogger) *ScenarioHandler {
	return &ScenarioHandler{logger: logger}
}

func (h *ScenarioHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)
	r.HandleFunc("/schedule", h.Schedule).Methods(http.MethodPost)
}

// Simulate runs a single prepayment month.
func (h *ScenarioHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := service.Simulate(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// Schedule runs a single prepayment month and returns every month.
func (h *ScenarioHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	months, result, err := service.Schedule(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, scheduleResponse{Result: result, Months: months})
}
