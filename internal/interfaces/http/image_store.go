package http

import (
	"context"
	"io"
)

// ImageStore puerto mínimo del almacén de imágenes que usan los handlers.
// Save devuelve la referencia pública ("uploads/<clave>"); Open abre por clave
// y devuelve también el content type.
type ImageStore interface {
	Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
