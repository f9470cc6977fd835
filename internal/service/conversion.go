package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cxf-converter/internal/config"
	"cxf-converter/internal/convert"
	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/storage"
	"cxf-converter/internal/ws"
)

// FileError describes an uploaded file that produced no record.
type FileError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
	Data     bool   `json:"data_error"`
}

type ConversionService struct {
	cfg       config.Config
	store     *storage.Store
	hub       *ws.Hub
	converter *convert.Converter
	log       observability.Logger
}

func NewConversionService(cfg config.Config, store *storage.Store, hub *ws.Hub, log observability.Logger) *ConversionService {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &ConversionService{
		cfg:       cfg,
		store:     store,
		hub:       hub,
		converter: convert.New(log),
		log:       log,
	}
}

// ConvertUploads converts every file and stores one record per file that
// parsed. Files keep their upload order in both returned slices.
func (s *ConversionService) ConvertUploads(ctx context.Context, files []convert.File) ([]model.ConversionRecord, []FileError, error) {
	results, err := s.converter.ConvertFiles(ctx, files, s.cfg.ConvertWorkers)
	if err != nil {
		return nil, nil, err
	}

	records := make([]model.ConversionRecord, 0, len(results))
	var failed []FileError
	for i, res := range results {
		if res.Err != nil {
			failed = append(failed, FileError{
				FileName: res.Name,
				Error:    res.Err.Error(),
				Data:     convert.IsDataError(res.Err),
			})
			continue
		}
		rec := model.ConversionRecord{
			ID:        uuid.NewString(),
			FileName:  res.Name,
			SizeBytes: int64(len(files[i].Data)),
			Results:   res.Report.Results,
			Warnings:  res.Report.Warnings,
			Failures:  res.Report.Failures,
			CreatedAt: time.Now().UnixMilli(),
		}
		if err := s.store.AddConversion(rec); err != nil {
			return nil, nil, err
		}
		s.log.Info("conversion stored",
			observability.String("id", rec.ID),
			observability.String("file", rec.FileName),
			observability.Int("results", len(rec.Results)),
		)
		s.hub.BroadcastEvent(model.Event{
			Type: model.EventConversionCompleted,
			Payload: map[string]interface{}{
				"id":        rec.ID,
				"file_name": rec.FileName,
				"results":   len(rec.Results),
				"failures":  len(rec.Failures),
			},
			CreatedAt: rec.CreatedAt,
		})
		records = append(records, rec)
	}
	return records, failed, nil
}

func (s *ConversionService) List(limit int) []model.ConversionRecord {
	return s.store.ListConversions(limit)
}

func (s *ConversionService) Get(id string) (model.ConversionRecord, error) {
	return s.store.GetConversion(id)
}
