// Package services реализует учёт показателей здоровья пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/healthmate/internal/metrics"
	"github.com/magabrotheeeer/healthmate/internal/models"
	"github.com/magabrotheeeer/healthmate/internal/storage"
)

var (
	// ErrNotFound записи нет или она принадлежит другому пользователю.
	ErrNotFound = errors.New("vitals not found")
	// ErrNoMeasurement не заполнено ни одно из bp, sugar, weight.
	ErrNoMeasurement = errors.New("at least one of bp, sugar or weight is required")
)

// VitalsRepository описывает методы для работы с показателями в хранилище.
type VitalsRepository interface {
	CreateVitals(ctx context.Context, v models.Vitals) error
	ListVitals(ctx context.Context, userID string) ([]models.Vitals, error)
	DeleteVitals(ctx context.Context, userID, id string) error
}

// VitalsInput данные новой записи. Date nil означает текущий момент.
type VitalsInput struct {
	BP     string
	Sugar  string
	Weight string
	Note   string
	Date   *time.Time
}

// VitalsService бизнес-логика показателей.
type VitalsService struct {
	repo    VitalsRepository
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// NewVitalsService создает новый экземпляр VitalsService.
func NewVitalsService(log *slog.Logger, repo VitalsRepository, m *metrics.Metrics) *VitalsService {
	return &VitalsService{repo: repo, metrics: m, log: log, now: time.Now}
}

// Add сохраняет запись показателей пользователя.
func (s *VitalsService) Add(ctx context.Context, userID string, in VitalsInput) (*models.Vitals, error) {
	const op = "services.vitals.Add"

	now := s.now().UTC()
	v := models.Vitals{
		ID:        uuid.NewString(),
		UserID:    userID,
		BP:        strings.TrimSpace(in.BP),
		Sugar:     strings.TrimSpace(in.Sugar),
		Weight:    strings.TrimSpace(in.Weight),
		Note:      in.Note,
		Date:      now,
		CreatedAt: now,
	}
	if in.Date != nil && !in.Date.IsZero() {
		v.Date = in.Date.UTC()
	}
	if !v.HasMeasurement() {
		return nil, fmt.Errorf("%s: %w", op, ErrNoMeasurement)
	}

	if err := s.repo.CreateVitals(ctx, v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.RecordVitals()
	s.log.Info("vitals added", slog.String("vitals_id", v.ID), slog.String("user_id", userID))
	return &v, nil
}

// List возвращает записи пользователя, новые первыми.
func (s *VitalsService) List(ctx context.Context, userID string) ([]models.Vitals, error) {
	const op = "services.vitals.List"
	list, err := s.repo.ListVitals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Delete удаляет запись пользователя.
func (s *VitalsService) Delete(ctx context.Context, userID, id string) error {
	const op = "services.vitals.Delete"

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err := s.repo.DeleteVitals(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
