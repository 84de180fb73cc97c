// Package sku genera identificadores legibles de producto.
package sku

import (
	"crypto/rand"
	"fmt"
)

// alphabet excluye minúsculas para que el SKU sea legible en etiquetas impresas.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const tokenLen = 8

// New genera un SKU con formato "SKU-" + 8 caracteres aleatorios en mayúscula.
func New() string {
	return "SKU-" + token(tokenLen)
}

func token(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand solo falla si el sistema no tiene fuente de entropía
		panic(fmt.Sprintf("sku: leer entropía: %v", err))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
