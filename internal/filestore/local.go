package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Local хранит файлы в каталоге на диске сервера.
type Local struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewLocal создаёт каталог dir, если его нет.
func NewLocal(dir, publicPrefix string) (*Local, error) {
	const op = "filestore.NewLocal"
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Local{
		dir:    dir,
		prefix: strings.TrimRight(publicPrefix, "/"),
		now:    time.Now,
	}, nil
}

// Save записывает файл и возвращает URL вида <prefix>/<имя>.
func (l *Local) Save(_ context.Context, name string, content []byte, _ string) (StoredFile, error) {
	const op = "filestore.Local.Save"
	objectName := ObjectName(name, l.now())
	if err := os.WriteFile(filepath.Join(l.dir, objectName), content, 0o640); err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}
	return StoredFile{URL: path.Join(l.prefix, objectName), ID: objectName}, nil
}

// Delete удаляет файл. Отсутствие файла ошибкой не считается.
func (l *Local) Delete(_ context.Context, file StoredFile) error {
	const op = "filestore.Local.Delete"
	p, err := l.Path(file.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Path возвращает путь на диске для имени объекта.
func (l *Local) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(l.dir, name), nil
}

// URL возвращает публичный URL для имени объекта.
func (l *Local) URL(name string) string {
	return path.Join(l.prefix, name)
}
