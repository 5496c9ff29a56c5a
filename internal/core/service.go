package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csv2json/internal/config"
	"github.com/JonMunkholm/csv2json/internal/convert"
	"github.com/JonMunkholm/csv2json/internal/highlight"
	"github.com/JonMunkholm/csv2json/internal/logging"
	"github.com/JonMunkholm/csv2json/internal/metrics"
)

// Sources label where a conversion request came from.
const (
	SourceAPI    = "api"
	SourceUpload = "upload"
	SourceCLI    = "cli"
)

// Result is a successful conversion ready for display or download.
type Result struct {
	ID       string        `json:"id"`
	JSON     string        `json:"json"`
	HTML     string        `json:"html"`
	Records  int           `json:"records"`
	Columns  []string      `json:"columns"`
	Duration time.Duration `json:"-"`
}

// Service coordinates conversions: size limits, concurrency, optional UI
// delay, highlighting and metrics. The converter itself stays pure.
type Service struct {
	cfg     config.ConvertConfig
	limiter *ConversionLimiter
	metrics *metrics.Metrics
}

// NewService creates a service. m may be nil to disable metrics.
func NewService(cfg *config.Config, m *metrics.Metrics) *Service {
	return &Service{
		cfg:     cfg.Convert,
		limiter: NewConversionLimiter(cfg.Convert.MaxConcurrent, cfg.Convert.MaxWaitTime),
		metrics: m,
	}
}

// Convert turns csv text into a Result. source is a metrics label, one of
// the Source constants.
func (s *Service) Convert(ctx context.Context, source, csv string) (*Result, error) {
	if int64(len(csv)) > s.cfg.MaxInputSize {
		s.metrics.ObserveFailure(source, "InputTooLarge", len(csv))
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrInputTooLarge, len(csv), s.cfg.MaxInputSize)
	}
	return s.convert(ctx, source, csv, len(csv))
}

// ConvertUpload reads an uploaded file, decodes it to UTF-8 and converts
// it. encName may be empty to auto-detect the charset. The size limit
// applies to the file as uploaded; decoding a single-byte charset may
// grow the text past it. The decoded text is returned with the Result.
func (s *Service) ConvertUpload(ctx context.Context, source string, r io.Reader, name, encName string) (*Result, string, error) {
	if err := CheckFileName(name); err != nil {
		return nil, "", err
	}
	data, err := ReadLimited(r, s.cfg.MaxInputSize)
	if err != nil {
		return nil, "", err
	}
	text, err := DecodeText(data, encName)
	if err != nil {
		return nil, "", err
	}

	res, err := s.convert(ctx, source, text, len(data))
	if err != nil {
		return nil, "", err
	}
	return res, text, nil
}

// convert runs a conversion whose size has already been checked. size is
// the input size reported to metrics and logs.
func (s *Service) convert(ctx context.Context, source, csv string, size int) (*Result, error) {
	logger := logging.WithFields(ctx, clientLogArgs(ctx)...)

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("conversion slot unavailable", "error", err, "status", s.limiter.Status())
		return nil, err
	}
	defer s.release()
	s.trackActive()

	if err := s.pause(ctx); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	start := time.Now()

	doc, err := convert.Parse(csv)
	if err != nil {
		s.metrics.ObserveFailure(source, string(convert.KindOf(err)), size)
		logger.Debug("conversion rejected",
			"conversion_id", id,
			"source", source,
			"error", err,
		)
		return nil, err
	}

	out, err := convert.Marshal(doc)
	if err != nil {
		s.metrics.ObserveFailure(source, "Marshal", size)
		return nil, fmt.Errorf("render json: %w", err)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveSuccess(source, size, len(doc), elapsed)

	var columns []string
	if len(doc) > 0 {
		columns = doc[0].Names()
	}

	logger.Info("conversion completed",
		"conversion_id", id,
		"source", source,
		"bytes", size,
		"records", len(doc),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &Result{
		ID:       id,
		JSON:     out,
		HTML:     highlight.HTML(out),
		Records:  len(doc),
		Columns:  columns,
		Duration: elapsed,
	}, nil
}

// MaxInputSize returns the configured input limit in bytes.
func (s *Service) MaxInputSize() int64 {
	return s.cfg.MaxInputSize
}

// LimiterStatus reports current conversion concurrency.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForConversions blocks until in-flight conversions finish or ctx ends.
func (s *Service) WaitForConversions(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// pause applies the configured UI delay. It never changes the result.
func (s *Service) pause(ctx context.Context) error {
	if s.cfg.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) trackActive() {
	if s.metrics != nil {
		s.metrics.ActiveConversions.Inc()
	}
}

func (s *Service) release() {
	if s.metrics != nil {
		s.metrics.ActiveConversions.Dec()
	}
	s.limiter.Release()
}
