package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dsolodov/foodwheel/internal/config"
	"github.com/dsolodov/foodwheel/internal/handler"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/metrics"
	"github.com/dsolodov/foodwheel/internal/payment"
	"github.com/dsolodov/foodwheel/internal/spin"
	"github.com/dsolodov/foodwheel/internal/storage"
)

type Server struct {
	httpServer     *http.Server
	store          storage.Store
	spinService    spin.Service
	paymentService payment.Service
}

// NewServer creates a new Server instance
func NewServer(cfg *config.Config, store storage.Store, spinService spin.Service, paymentService payment.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		spinHandler := handler.NewSpinHandler(spinService, cfg.SpinPrice, cfg.Sectors)
		r.Post("/spin", spinHandler.HandleSpin)
		r.Get("/state", spinHandler.HandleGetState)
		r.Get("/history", spinHandler.HandleGetHistory)

		paymentHandler := handler.NewPaymentHandler(paymentService, cfg)
		r.Route("/payment", func(r chi.Router) {
			r.Post("/intents", paymentHandler.HandleCreateIntent)
			r.Get("/requisites", paymentHandler.HandleGetRequisites)
		})

		// Admin routes sit behind the shared-secret gate.
		adminHandler := handler.NewAdminHandler(paymentService)
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminPassword))

			r.Route("/payment/intents", func(r chi.Router) {
				r.Get("/", adminHandler.HandleListIntents)
				r.Post("/confirm", adminHandler.HandleConfirmIntent)
				r.Post("/reject", adminHandler.HandleRejectIntent)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store:          store,
		spinService:    spinService,
		paymentService: paymentService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
