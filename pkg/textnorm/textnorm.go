// Package textnorm normaliza texto de entrada antes de persistirlo. Los
// clientes (web, móvil, importaciones) envían el mismo nombre con distintas
// formas Unicode ("café" compuesto vs. descompuesto); sin normalizar, esas
// formas no comparan iguales en PostgreSQL.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean recorta espacios, colapsa espacios internos repetidos y normaliza a
// la forma NFC.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
