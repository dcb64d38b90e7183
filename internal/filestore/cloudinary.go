package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/magabrotheeeer/healthmate/internal/config"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary хранит файлы в Cloudinary. ID имеет вид <resource_type>:<public_id>,
// потому что для удаления PDF нужен тип ресурса, с которым он загружен.
type Cloudinary struct {
	api    cloudinaryAPI
	folder string
	now    func() time.Time
}

// NewCloudinary создаёт клиента по ключам аккаунта.
func NewCloudinary(cfg config.CloudinaryStorage) (*Cloudinary, error) {
	const op = "filestore.NewCloudinary"
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cloudinary{api: &cld.Upload, folder: cfg.Folder, now: time.Now}, nil
}

// Save загружает файл, тип ресурса Cloudinary определяет сам.
func (c *Cloudinary) Save(ctx context.Context, name string, content []byte, _ string) (StoredFile, error) {
	const op = "filestore.Cloudinary.Save"
	objectName := ObjectName(name, c.now())
	res, err := c.api.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID:     strings.TrimSuffix(objectName, filepath.Ext(objectName)),
		Folder:       c.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.Error.Message != "" {
		return StoredFile{}, fmt.Errorf("%s: %w", op, errors.New(res.Error.Message))
	}
	return StoredFile{URL: res.SecureURL, ID: res.ResourceType + ":" + res.PublicID}, nil
}

// Delete удаляет ресурс.
func (c *Cloudinary) Delete(ctx context.Context, file StoredFile) error {
	const op = "filestore.Cloudinary.Delete"
	resourceType, publicID, ok := strings.Cut(file.ID, ":")
	if !ok || publicID == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidName)
	}
	res, err := c.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("%s: %w", op, errors.New(res.Error.Message))
	}
	return nil
}
