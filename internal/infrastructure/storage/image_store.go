// Package storage implementa el almacén de imágenes sobre MinIO (o cualquier
// servicio compatible S3). Las referencias que entrega son rutas estables de
// la forma "uploads/<clave>" servidas por el endpoint público de uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tu-usuario/sticker-orders/pkg/config"
)

// uploadPrefix es el prefijo público de toda referencia de imagen.
const uploadPrefix = "uploads/"

// ImageStore almacén de imágenes sobre un bucket MinIO.
type ImageStore struct {
	mc     *minio.Client
	bucket string
}

// NewImageStore crea el cliente MinIO y valida la configuración mínima.
func NewImageStore(cfg config.StorageConfig) (*ImageStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage: endpoint es requerido")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage: access key y secret key son requeridos")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: crear cliente minio: %w", err)
	}
	return &ImageStore{mc: mc, bucket: cfg.Bucket}, nil
}

// EnsureBucket crea el bucket si no existe. Llamar una vez al arrancar.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: verificar bucket: %w", err)
	}
	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("storage: crear bucket: %w", err)
		}
	}
	return nil
}

// Save sube una imagen y devuelve su referencia estable ("uploads/<clave>").
// La clave se genera con UUID conservando la extensión del archivo original.
func (s *ImageStore) Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	_, err := s.mc.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	return uploadPrefix + key, nil
}

// Open abre una imagen por su clave (sin el prefijo "uploads/") y devuelve el
// stream junto con el content type. El llamador cierra el ReadCloser.
func (s *ImageStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := s.mc.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("storage: abrir %s: %w", key, err)
	}
	// GetObject es perezoso: Stat confirma que el objeto existe.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("storage: stat %s: %w", key, err)
	}
	return obj, info.ContentType, nil
}

// Delete elimina una imagen por su clave.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	return s.mc.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// TrimPrefix convierte una referencia pública ("uploads/<clave>") en la clave
// interna del bucket.
func TrimPrefix(ref string) string {
	return strings.TrimPrefix(ref, uploadPrefix)
}
