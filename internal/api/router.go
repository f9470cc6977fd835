package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cxf-converter/internal/config"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/service"
	"cxf-converter/internal/ws"
)

func NewRouter(
	cfg config.Config,
	log observability.Logger,
	hub *ws.Hub,
	conversions *service.ConversionService,
	deliveries *service.DeliveryService,
	swatches *service.SwatchService,
) http.Handler {
	if log == nil {
		log = observability.NopLogger{}
	}
	h := &Handler{
		cfg:         cfg,
		log:         log,
		hub:         hub,
		conversions: conversions,
		deliveries:  deliveries,
		swatches:    swatches,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/ws", h.WebSocket)
	mux.HandleFunc("/v1/cxf/convert", h.ConvertCxF)
	mux.HandleFunc("/v1/conversions", h.ListConversions)
	mux.HandleFunc("/v1/conversions/", h.Conversion)
	mux.HandleFunc("/v1/results/email", h.EmailResults)

	return logRequests(log, limitBody(cfg.MaxUploadSizeBytes, mux))
}

func limitBody(maxSize int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// The websocket route is not wrapped; the upgrader needs the raw hijacker.
func logRequests(log observability.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/ws" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("http request",
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
			observability.Int("status", rec.status),
			observability.Int("duration_ms", int(time.Since(start).Milliseconds())),
		)
	})
}
