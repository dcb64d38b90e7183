package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/healthmate/internal/models"
)

// CreateVitals сохраняет запись показателей.
func (s *Storage) CreateVitals(ctx context.Context, v models.Vitals) error {
	const op = "storage.CreateVitals"

	query := `INSERT INTO vitals (id, user_id, bp, sugar, weight, note, date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := s.DB.ExecContext(ctx, query,
		v.ID, v.UserID, v.BP, v.Sugar, v.Weight, v.Note, v.Date, v.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListVitals возвращает показатели пользователя, по убыванию даты.
func (s *Storage) ListVitals(ctx context.Context, userID string) ([]models.Vitals, error) {
	const op = "storage.ListVitals"

	query := `SELECT id, user_id, bp, sugar, weight, note, date, created_at
			  FROM vitals
			  WHERE user_id = $1
			  ORDER BY date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Vitals, 0)
	for rows.Next() {
		var v models.Vitals
		if err := rows.Scan(&v.ID, &v.UserID, &v.BP, &v.Sugar, &v.Weight, &v.Note, &v.Date, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteVitals удаляет запись id владельца userID. ErrNotFound, если удалять нечего.
func (s *Storage) DeleteVitals(ctx context.Context, userID, id string) error {
	const op = "storage.DeleteVitals"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM vitals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}
