package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"prepay-sim/domain"
	"prepay-sim/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  logrus.FieldLogger
}

func NewLoanHandler(service *service.LoanService, logger logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger}
}

func (h *LoanHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/emi", h.CalculateLoan).Methods(http.MethodPost)
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
