// Package services реализует жизненный цикл медицинских отчётов: загрузку файла,
// AI-анализ, сохранение, выдачу и удаление.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/healthmate/internal/analyzer"
	"github.com/magabrotheeeer/healthmate/internal/events"
	"github.com/magabrotheeeer/healthmate/internal/filestore"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/metrics"
	"github.com/magabrotheeeer/healthmate/internal/models"
	"github.com/magabrotheeeer/healthmate/internal/storage"
)

// Значения по умолчанию для полей, которые модель не вернула.
const (
	DefaultTitle       = "Untitled Report"
	NoSummary          = "No summary available"
	NoExplanation      = "No explanation"
	defaultContentType = "application/octet-stream"
)

var (
	// ErrNotFound отчёта нет или он принадлежит другому пользователю.
	ErrNotFound = errors.New("report not found")
	// ErrNoFile в запросе нет файла.
	ErrNoFile = errors.New("no file uploaded")
)

// ReportRepository описывает методы для работы с отчётами в хранилище.
type ReportRepository interface {
	// CreateReport сохраняет отчёт.
	CreateReport(ctx context.Context, r models.Report) error
	// ListReports возвращает отчёты пользователя, новые первыми.
	ListReports(ctx context.Context, userID string) ([]models.Report, error)
	// GetReport возвращает отчёт пользователя по ID.
	GetReport(ctx context.Context, userID, id string) (*models.Report, error)
	// ReportFileExists сообщает, есть ли у пользователя отчёт с таким URL файла.
	ReportFileExists(ctx context.Context, userID, fileURL string) (bool, error)
	// DeleteReport удаляет отчёт пользователя по ID.
	DeleteReport(ctx context.Context, userID, id string) error
}

// Analyzer анализирует содержимое файла.
type Analyzer interface {
	Analyze(ctx context.Context, content []byte, mimeType string) (*analyzer.Result, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// UploadFile загруженный файл.
type UploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// ReportService реализует бизнес-логику работы с отчётами, включая кеширование списков.
type ReportService struct {
	repo      ReportRepository
	files     filestore.Store
	analyzer  Analyzer
	cache     Cache
	cacheTTL  time.Duration
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *slog.Logger
	now       func() time.Time
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(
	log *slog.Logger,
	repo ReportRepository,
	files filestore.Store,
	ai Analyzer,
	cache Cache,
	cacheTTL time.Duration,
	publisher events.Publisher,
	m *metrics.Metrics,
) *ReportService {
	return &ReportService{
		repo:      repo,
		files:     files,
		analyzer:  ai,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

func listCacheKey(userID string) string {
	return "reports:" + userID
}

// Upload сохраняет файл, отправляет его на анализ и сохраняет отчёт.
// Если анализ или запись в БД не удались, файл удаляется.
func (s *ReportService) Upload(ctx context.Context, userID string, file UploadFile) (*models.Report, error) {
	const op = "services.report.Upload"

	report, err := s.upload(ctx, userID, file)
	s.metrics.RecordUpload(err == nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, userID)
	s.publisher.Publish(ctx, events.ReportCreated, events.ReportEvent{
		ReportID:   report.ID,
		UserID:     userID,
		Title:      report.Title,
		MimeType:   report.MimeType,
		OccurredAt: report.CreatedAt,
	})
	s.log.Info("report uploaded", slog.String("report_id", report.ID), slog.String("user_id", userID))
	return report, nil
}

func (s *ReportService) upload(ctx context.Context, userID string, file UploadFile) (*models.Report, error) {
	if file.Name == "" || len(file.Content) == 0 {
		return nil, ErrNoFile
	}

	mimeType := strings.TrimSpace(file.ContentType)
	if mimeType == "" || mimeType == defaultContentType {
		mimeType = http.DetectContentType(file.Content)
	}

	stored, err := s.files.Save(ctx, file.Name, file.Content, mimeType)
	if err != nil {
		return nil, err
	}

	start := s.now()
	result, err := s.analyzer.Analyze(ctx, file.Content, mimeType)
	s.metrics.RecordAnalysis(s.now().Sub(start), err == nil)
	if err != nil {
		s.removeFile(ctx, stored)
		return nil, err
	}

	report := buildReport(result)
	report.ID = uuid.NewString()
	report.UserID = userID
	report.Filename = file.Name
	report.FileURL = stored.URL
	report.StorageID = stored.ID
	report.MimeType = mimeType
	report.CreatedAt = s.now().UTC()

	if err = s.repo.CreateReport(ctx, report); err != nil {
		s.removeFile(ctx, stored)
		return nil, err
	}
	return &report, nil
}

// buildReport переносит поля анализа в отчёт, подставляя значения по умолчанию.
func buildReport(res *analyzer.Result) models.Report {
	if res == nil {
		res = &analyzer.Result{}
	}
	report := models.Report{
		Title:              valueOr(res.Title, ""),
		DateSeen:           valueOr(res.Date, ""),
		Summary:            valueOr(res.Summary, ""),
		ExplanationEN:      valueOr(res.ExplanationEN, ""),
		ExplanationRO:      valueOr(res.ExplanationRO, ""),
		SuggestedQuestions: res.SuggestedQuestions,
	}
	if strings.TrimSpace(report.Title) == "" {
		report.Title = DefaultTitle
	}
	if report.SuggestedQuestions == nil {
		report.SuggestedQuestions = []string{}
	}
	return report
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// List возвращает отчёты пользователя, используя кеш.
func (s *ReportService) List(ctx context.Context, userID string) ([]models.Report, error) {
	const op = "services.report.List"

	key := listCacheKey(userID)
	var cached []models.Report
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	reports, err := s.repo.ListReports(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, reports, s.cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return reports, nil
}

// Get возвращает отчёт пользователя.
func (s *ReportService) Get(ctx context.Context, userID, reportID string) (*models.Report, error) {
	const op = "services.report.Get"

	if _, err := uuid.Parse(reportID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	report, err := s.repo.GetReport(ctx, userID, reportID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}

// Delete удаляет отчёт, затем пытается удалить файл. Ошибка удаления файла
// только логируется.
func (s *ReportService) Delete(ctx context.Context, userID, reportID string) error {
	const op = "services.report.Delete"

	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.repo.DeleteReport(ctx, userID, reportID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.removeFile(ctx, filestore.StoredFile{URL: report.FileURL, ID: report.StorageID})
	s.invalidate(ctx, userID)
	s.metrics.RecordReportDelete()
	s.publisher.Publish(ctx, events.ReportDeleted, events.ReportEvent{
		ReportID:   report.ID,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
	})
	s.log.Info("report deleted", slog.String("report_id", reportID), slog.String("user_id", userID))
	return nil
}

// Insights возвращает краткую сводку по всем отчётам пользователя.
func (s *ReportService) Insights(ctx context.Context, userID string) ([]models.Insight, error) {
	const op = "services.report.Insights"

	reports, err := s.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	insights := make([]models.Insight, 0, len(reports))
	for _, r := range reports {
		insights = append(insights, models.Insight{
			ID:            r.ID,
			ReportTitle:   firstNonEmpty(r.Title, r.Filename),
			Summary:       firstNonEmpty(r.Summary, NoSummary),
			ExplanationEN: firstNonEmpty(r.ExplanationEN, NoExplanation),
			ExplanationRO: firstNonEmpty(r.ExplanationRO, NoExplanation),
		})
	}
	return insights, nil
}

// OwnsFile сообщает, принадлежит ли файл с URL fileURL отчёту пользователя.
func (s *ReportService) OwnsFile(ctx context.Context, userID, fileURL string) (bool, error) {
	const op = "services.report.OwnsFile"
	ok, err := s.repo.ReportFileExists(ctx, userID, fileURL)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (s *ReportService) removeFile(ctx context.Context, file filestore.StoredFile) {
	if file.ID == "" {
		return
	}
	// Запрос мог быть отменён, файл всё равно удаляем.
	ctx = context.WithoutCancel(ctx)
	if err := s.files.Delete(ctx, file); err != nil {
		s.log.Warn("failed to delete stored file", slog.String("file_id", file.ID), sl.Err(err))
	}
}

func (s *ReportService) invalidate(ctx context.Context, userID string) {
	key := listCacheKey(userID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
