// Package storage реализует хранилище данных HealthMate на основе PostgreSQL:
// пользователи, отчёты и показатели здоровья. Все выборки отчётов и показателей
// фильтруются по владельцу прямо в запросе, поэтому чужая запись неотличима
// от отсутствующей.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound запись не найдена (или принадлежит другому пользователю).
	ErrNotFound = errors.New("record not found")
	// ErrEmailExists пользователь с таким email уже зарегистрирован.
	ErrEmailExists = errors.New("email already exists")
)

const uniqueViolation = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, connectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// NewWithDB оборачивает уже открытое соединение (используется в тестах).
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
