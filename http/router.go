package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"prepay-sim/service"
)

// NewRouter mounts the API:
//
//	POST /loan/emi
//	POST /scenario/simulate
//	POST /scenario/schedule
//	POST /scenario/sweep
//	GET  /scenario/sweep/{id}
//	GET  /scenario/sweep/{id}/pdf
func NewRouter(
	loanService *service.LoanService,
	sweepService *service.SweepService,
	limiter *RateLimiter,
	logger logrus.FieldLogger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(logger))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	if limiter != nil {
		api.Use(RateLimitMiddleware(limiter))
	}

	NewLoanHandler(loanService, logger).RegisterRoutes(api.PathPrefix("/loan").Subrouter())

	scenarioRouter := api.PathPrefix("/scenario").Subrouter()
	NewScenarioHandler(logger).RegisterRoutes(scenarioRouter)
	NewSweepHandler(sweepService, logger).RegisterRoutes(scenarioRouter)

	return router
}
