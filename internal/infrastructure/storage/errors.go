package storage

import "errors"

// ErrObjectNotFound indica que la clave no existe en el bucket.
var ErrObjectNotFound = errors.New("storage: objeto no encontrado")
