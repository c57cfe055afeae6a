package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/export"
	"github.com/noah-isme/innovators-hub-api/pkg/storage"
)

type adminAnalyticsProvider interface {
	Admin(ctx context.Context) (*models.AdminAnalytics, bool, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type tokenSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string) (exportID, relPath string, expiresAt time.Time, err error)
}

type reportRenderer interface {
	Render(report export.Report) ([]byte, error)
	Extension() string
	ContentType() string
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled      bool
	DownloadPath string
	Retention    time.Duration
}

// Download is an opened export ready to stream.
type Download struct {
	File        *os.File
	Filename    string
	ContentType string
}

// ExportService renders admin analytics to files and hands out signed download links.
type ExportService struct {
	analytics adminAnalyticsProvider
	storage   fileStorage
	signer    tokenSigner
	renderers map[string]reportRenderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(analytics adminAnalyticsProvider, store fileStorage, signer tokenSigner, metrics *MetricsService, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = "/downloads"
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	renderers := map[string]reportRenderer{}
	for _, r := range []reportRenderer{export.NewCSVExporter(), export.NewPDFExporter()} {
		renderers[r.Extension()] = r
	}
	return &ExportService{
		analytics: analytics,
		storage:   store,
		signer:    signer,
		renderers: renderers,
		metrics:   metrics,
		validator: validator.New(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate renders the current admin analytics in the requested format and stores it.
func (s *ExportService) Generate(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled")
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "format must be csv or pdf")
	}
	renderer := s.renderers[req.Format]

	analytics, _, err := s.analytics.Admin(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := renderer.Render(BuildAnalyticsReport(analytics))
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to render export")
	}

	exportID := uuid.NewString()
	filename := path.Join("analytics", fmt.Sprintf("analytics_%s_%s.%s", s.now().UTC().Format("20060102_150405"), exportID[:8], renderer.Extension()))
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to sign export link")
	}

	s.metrics.RecordExport(req.Format)
	s.logger.Info("analytics export generated", zap.String("export_id", exportID), zap.String("format", req.Format), zap.Int("bytes", len(payload)))

	return &dto.ExportResponse{
		ID:        exportID,
		Format:    req.Format,
		URL:       strings.TrimRight(s.cfg.DownloadPath, "/") + "/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// Open validates a download token and opens the export it references.
func (s *ExportService) Open(token string) (*Download, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download not found")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrNotFound, "download not found")
	}
	ext := strings.TrimPrefix(path.Ext(relPath), ".")
	contentType := "application/octet-stream"
	if r, ok := s.renderers[ext]; ok {
		contentType = r.ContentType()
	}
	return &Download{File: file, Filename: path.Base(relPath), ContentType: contentType}, nil
}

// Cleanup removes exports older than the retention window.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.Retention)
}

// BuildAnalyticsReport lays the admin analytics out as export sections.
func BuildAnalyticsReport(a *models.AdminAnalytics) export.Report {
	totals := [][]string{
		{"total", strconv.Itoa(a.Totals.Total)},
		{"approved", strconv.Itoa(a.Totals.Approved)},
		{"pending", strconv.Itoa(a.Totals.Pending)},
		{"rejected", strconv.Itoa(a.Totals.Rejected)},
		{"revision", strconv.Itoa(a.Totals.Revision)},
		{"approval rate (%)", strconv.Itoa(a.ApprovalRate)},
	}

	faculties := make([][]string, 0, len(a.Faculties))
	for _, f := range a.Faculties {
		faculties = append(faculties, []string{f.Name, strconv.Itoa(f.Count), strconv.Itoa(f.Approved)})
	}

	technologies := make([][]string, 0, len(a.Technologies))
	for _, t := range a.Technologies {
		technologies = append(technologies, []string{t.Name, strconv.Itoa(t.Count)})
	}

	return export.Report{
		Title:       "Innovators Hub analytics",
		GeneratedAt: a.GeneratedAt,
		Sections: []export.Section{
			{Name: "Projects", Headers: []string{"Metric", "Value"}, Rows: totals},
			{Name: "Faculties", Headers: []string{"Faculty", "Projects", "Approved"}, Rows: faculties},
			{Name: "Top technologies", Headers: []string{"Technology", "Projects"}, Rows: technologies},
		},
	}
}
