package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/storage"
	"cxf-converter/internal/ws"
)

type Mailer interface {
	Send(ctx context.Context, msg Email) (string, error)
}

// EmailRequest asks for results to be mailed. Results may be a JSON array or
// a string holding one.
type EmailRequest struct {
	Email   string          `json:"email"`
	Privacy bool            `json:"privacy"`
	Results json.RawMessage `json:"results"`
}

// ValidationError lists messages per request field.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Validate returns the trimmed address and decoded results.
func (r EmailRequest) Validate() (string, []model.ConversionResult, error) {
	verr := &ValidationError{}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		verr.add("email", "Email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.add("email", "Please enter a valid email address")
	}
	if !r.Privacy {
		verr.add("privacy", "You must agree to the privacy policy")
	}

	results, err := decodeResults(r.Results)
	switch {
	case err == errMissingResults:
		verr.add("results", "Missing conversion data")
	case err != nil:
		verr.add("results", "Invalid conversion results format")
	}

	if len(verr.Fields) > 0 {
		return "", nil, verr
	}
	return email, results, nil
}

type resultsError string

func (e resultsError) Error() string { return string(e) }

const errMissingResults = resultsError("missing results")

func decodeResults(raw json.RawMessage) ([]model.ConversionResult, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" || string(raw) == `""` {
		return nil, errMissingResults
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = json.RawMessage(strings.TrimSpace(s))
	}
	var results []model.ConversionResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, resultsError("empty results")
	}
	return results, nil
}

type DeliveryService struct {
	mailer Mailer
	store  *storage.Store
	hub    *ws.Hub
	log    observability.Logger
}

func NewDeliveryService(mailer Mailer, store *storage.Store, hub *ws.Hub, log observability.Logger) *DeliveryService {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &DeliveryService{mailer: mailer, store: store, hub: hub, log: log}
}

func (s *DeliveryService) EmailResults(ctx context.Context, req EmailRequest) (model.DeliveryRecord, error) {
	email, results, err := req.Validate()
	if err != nil {
		return model.DeliveryRecord{}, err
	}
	html, err := RenderResultsEmail(results)
	if err != nil {
		return model.DeliveryRecord{}, err
	}
	msgID, err := s.mailer.Send(ctx, Email{To: []string{email}, Subject: resultsSubject, HTML: html})
	if err != nil {
		s.log.Error("send results email", observability.Int("results", len(results)), observability.Error("err", err))
		return model.DeliveryRecord{}, err
	}

	rec := model.DeliveryRecord{
		ID:          uuid.NewString(),
		Email:       email,
		MessageID:   msgID,
		ResultCount: len(results),
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.store.AddDelivery(rec); err != nil {
		return model.DeliveryRecord{}, err
	}
	s.hub.BroadcastEvent(model.Event{
		Type:      model.EventResultsEmailed,
		Payload:   map[string]interface{}{"id": rec.ID, "result_count": rec.ResultCount},
		CreatedAt: rec.CreatedAt,
	})
	return rec, nil
}
