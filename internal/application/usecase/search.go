package usecase

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/suplegear-api/internal/domain"
)

const maxQueryLength = 100

// normalizeQuery limpia el término de búsqueda: NFC (tildes compuestas), espacios colapsados.
func normalizeQuery(q string) (string, error) {
	q = strings.Join(strings.Fields(norm.NFC.String(q)), " ")
	if q == "" {
		return "", domain.NewValidation("el parámetro de búsqueda q es obligatorio")
	}
	if utf8.RuneCountInString(q) > maxQueryLength {
		return "", domain.NewValidation("el término de búsqueda es demasiado largo")
	}
	return q, nil
}
