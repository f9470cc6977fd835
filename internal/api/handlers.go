package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"

	"cxf-converter/internal/config"
	"cxf-converter/internal/convert"
	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/service"
	"cxf-converter/internal/storage"
	"cxf-converter/internal/ws"
)

type Handler struct {
	cfg         config.Config
	log         observability.Logger
	hub         *ws.Hub
	conversions *service.ConversionService
	deliveries  *service.DeliveryService
	swatches    *service.SwatchService
	upgrader    websocket.Upgrader
}

type apiError struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type convertResponse struct {
	Conversions []model.ConversionRecord `json:"conversions"`
	Errors      []service.FileError      `json:"errors,omitempty"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WebSocket streams events; ?events=a,b limits the stream to those types.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", observability.String("remote", r.RemoteAddr), observability.Error("err", err))
		return
	}
	client := ws.NewClient(h.hub, conn, splitList(r.URL.Query().Get("events"))...)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) ConvertCxF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeErr(w, http.StatusBadRequest, errors.New("no file uploaded"))
		return
	}

	files := make([]convert.File, 0, len(headers))
	for _, fh := range headers {
		if err := validateCxFUpload(fh); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		b, err := readUpload(fh)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		files = append(files, convert.File{Name: filepath.Base(fh.Filename), Data: b})
	}

	records, failed, err := h.conversions.ConvertUploads(r.Context(), files)
	if err != nil {
		h.log.Error("convert uploads", observability.Int("files", len(files)), observability.Error("err", err))
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if len(records) == 0 {
		code := http.StatusUnprocessableEntity
		for _, f := range failed {
			if !f.Data {
				code = http.StatusInternalServerError
				break
			}
		}
		writeJSON(w, code, apiError{Error: failed[0].Error})
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Conversions: records, Errors: failed})
}

func (h *Handler) ListConversions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	limit := atoiDefault(r.URL.Query().Get("limit"), 50)
	writeJSON(w, http.StatusOK, map[string]interface{}{"conversions": h.conversions.List(limit)})
}

// Conversion serves /v1/conversions/{id} and /v1/conversions/{id}/swatch.png.
func (h *Handler) Conversion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/conversions/"), "/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, storage.ErrNotFound)
		return
	}
	rec, err := h.conversions.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	switch sub {
	case "":
		writeJSON(w, http.StatusOK, rec)
	case "swatch.png":
		b, err := h.swatches.RenderPNG(rec.Results)
		if err != nil {
			if errors.Is(err, service.ErrNoSwatches) {
				writeErr(w, http.StatusNotFound, err)
				return
			}
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	default:
		writeErr(w, http.StatusNotFound, errors.New("unknown conversion resource"))
	}
}

func (h *Handler) EmailResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req service.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	rec, err := h.deliveries.EmailResults(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "invalid request", Fields: verr.Fields})
		case errors.Is(err, service.ErrNoMailKey):
			writeErr(w, http.StatusServiceUnavailable, err)
		default:
			writeErr(w, http.StatusBadGateway, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Email sent successfully!",
		"delivery": rec,
	})
}

func validateCxFUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".cxf", ".xml":
		return nil
	default:
		return fmt.Errorf("unsupported file type %q, expected .cxf or .xml", ext)
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, apiError{Error: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiDefault(v string, d int) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return d
	}
	n := 0
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return d
		}
		n = n*10 + int(ch-'0')
	}
	if n <= 0 {
		return d
	}
	return n
}
