package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
)

var ErrUnknownDestination = errors.New("unknown output destination")

// Destination receives the analytics result of one run.
type Destination interface {
	WriteResult(ctx context.Context, report Report) error
	Close() error
}

// Report is the envelope written by every destination.
type Report struct {
	GeneratedAt time.Time              `json:"generatedAt"`
	Filter      models.Filter          `json:"filter"`
	Result      models.AnalyticsResult `json:"data"`
}

func NewReport(filter models.Filter, result models.AnalyticsResult) Report {
	return Report{GeneratedAt: time.Now().UTC(), Filter: filter, Result: result}
}

func (r Report) marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// key identifies the filter window; it is used as the Kafka message key and in file names.
func (r Report) key() string {
	f := r.Filter.Normalize()
	start, end, platform := f.StartDate, f.EndDate, f.Platform
	if start == "" {
		start = "begin"
	}
	if end == "" {
		end = "end"
	}
	if platform == "" {
		platform = models.PlatformAll
	}
	return fmt.Sprintf("%s_%s_%s", start, end, platform)
}

func (r Report) fileName(ext string) string {
	return fmt.Sprintf("menu_analytics_%s_%s%s", r.key(), r.GeneratedAt.UTC().Format("20060102T150405Z"), ext)
}

func (r Report) localPath(basePath, folder, ext string) string {
	return filepath.Join(basePath, folder, r.fileName(ext))
}
