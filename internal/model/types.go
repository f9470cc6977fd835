package model

import "time"

const (
	EventConversionCompleted = "conversion.completed"
	EventResultsEmailed      = "results.emailed"
)

// ColorSpaceResult is one row of a conversion, e.g. {"HEX", "#FFFFFF"}.
type ColorSpaceResult struct {
	Space string `json:"space" yaml:"space"`
	Value string `json:"value" yaml:"value"`
}

type ConversionResult struct {
	Name   string             `json:"name" yaml:"name"`
	Result []ColorSpaceResult `json:"result" yaml:"result"`
}

// SpectrumFailure records a spectrum that parsed but could not be converted.
type SpectrumFailure struct {
	Name          string `json:"name" yaml:"name"`
	Specification string `json:"specification" yaml:"specification"`
	Error         string `json:"error" yaml:"error"`
}

type ConversionRecord struct {
	ID        string             `json:"id"`
	FileName  string             `json:"file_name"`
	SizeBytes int64              `json:"size_bytes"`
	Results   []ConversionResult `json:"results"`
	Warnings  []string           `json:"warnings,omitempty"`
	Failures  []SpectrumFailure  `json:"failures,omitempty"`
	CreatedAt int64              `json:"created_at_unix_ms"`
}

type DeliveryRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	MessageID   string `json:"message_id"`
	ResultCount int    `json:"result_count"`
	CreatedAt   int64  `json:"created_at_unix_ms"`
}

type StoredState struct {
	Conversions       []ConversionRecord `json:"conversions"`
	Deliveries        []DeliveryRecord   `json:"deliveries"`
	LastUpdatedUnixMS int64              `json:"last_updated_unix_ms"`
	CreatedAt         time.Time          `json:"created_at"`
}

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt int64       `json:"created_at_unix_ms"`
}
