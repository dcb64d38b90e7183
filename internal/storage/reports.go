package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/healthmate/internal/models"
)

const reportColumns = `id, user_id, filename, file_url, storage_id, mime_type, title, date_seen,
	summary, explanation_en, explanation_ro, suggested_questions, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateReport сохраняет отчёт.
func (s *Storage) CreateReport(ctx context.Context, r models.Report) error {
	const op = "storage.CreateReport"

	questions := r.SuggestedQuestions
	if questions == nil {
		questions = []string{}
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO reports (` + reportColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = s.DB.ExecContext(ctx, query,
		r.ID, r.UserID, r.Filename, r.FileURL, r.StorageID, r.MimeType, r.Title, r.DateSeen,
		r.Summary, r.ExplanationEN, r.ExplanationRO, questionsJSON, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListReports возвращает отчёты пользователя, новые первыми.
func (s *Storage) ListReports(ctx context.Context, userID string) ([]models.Report, error) {
	const op = "storage.ListReports"

	query := `SELECT ` + reportColumns + `
			  FROM reports
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetReport возвращает отчёт id, принадлежащий userID, иначе ErrNotFound.
func (s *Storage) GetReport(ctx context.Context, userID, id string) (*models.Report, error) {
	const op = "storage.GetReport"

	query := `SELECT ` + reportColumns + `
			  FROM reports
			  WHERE id = $1 AND user_id = $2`
	r, err := scanReport(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ReportFileExists сообщает, есть ли у userID отчёт с указанным file_url.
func (s *Storage) ReportFileExists(ctx context.Context, userID, fileURL string) (bool, error) {
	const op = "storage.ReportFileExists"

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reports WHERE user_id = $1 AND file_url = $2)`
	if err := s.DB.QueryRowContext(ctx, query, userID, fileURL).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// DeleteReport удаляет отчёт id владельца userID. ErrNotFound, если удалять нечего.
func (s *Storage) DeleteReport(ctx context.Context, userID, id string) error {
	const op = "storage.DeleteReport"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM reports WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}

func scanReport(row rowScanner) (*models.Report, error) {
	var (
		r         models.Report
		questions []byte
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Filename, &r.FileURL, &r.StorageID, &r.MimeType,
		&r.Title, &r.DateSeen, &r.Summary, &r.ExplanationEN, &r.ExplanationRO, &questions, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.SuggestedQuestions = []string{}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &r.SuggestedQuestions); err != nil {
			return nil, fmt.Errorf("decode suggested_questions: %w", err)
		}
	}
	return &r, nil
}

func checkAffected(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
