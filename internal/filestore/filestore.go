// Package filestore хранит загруженные файлы отчётов. Поддерживаются три
// бэкенда: локальный диск, S3-совместимое хранилище и Cloudinary.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/healthmate/internal/config"
)

// ErrInvalidName имя файла пустое или указывает за пределы хранилища.
var ErrInvalidName = errors.New("invalid file name")

// StoredFile сохранённый файл: публичный URL и идентификатор в бэкенде,
// по которому файл удаляется.
type StoredFile struct {
	URL string
	ID  string
}

// Store общий интерфейс бэкендов.
type Store interface {
	Save(ctx context.Context, name string, content []byte, contentType string) (StoredFile, error)
	Delete(ctx context.Context, file StoredFile) error
}

// New создаёт хранилище по настройке backend.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	const op = "filestore.New"

	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case config.StorageLocal:
		store, err = NewLocal(cfg.Local.Dir, cfg.Local.PublicPrefix)
	case config.StorageS3:
		store, err = NewS3(ctx, cfg.S3)
	case config.StorageCloudinary:
		store, err = NewCloudinary(cfg.Cloudinary)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return store, nil
}

// ObjectName строит имя объекта вида <unix-ms>-<8 hex>-<имя>, оставляя в имени
// только безопасные символы. Случайная часть делает имена уникальными
// и в пределах одной миллисекунды.
func ObjectName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString()[:8], clean)
}
