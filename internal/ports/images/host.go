package images

import "context"

// Host abstrae al servicio de hosting de imágenes (imgbb-style).
// Upload devuelve la URL pública de display.
type Host interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
