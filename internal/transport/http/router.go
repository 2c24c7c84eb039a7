// Package httptransport assembles the public router. Transport concerns stay
// here; business logic lives in the domain services.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	kychandler "veridoc/internal/kyc/handler"
	"veridoc/pkg/httputil"
)

// NewRouter wires all public endpoints: the verification API, health, and
// Prometheus metrics.
func NewRouter(kyc *kychandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	kyc.Register(r)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
