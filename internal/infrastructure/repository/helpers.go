package repository

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/nitrodesk/nitrodesk/internal/shared/errors"
)

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// escapeLike neutralises LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func persistenceError(msg string, err error) error {
	return apperrors.NewPersistenceError(msg).WithCause(err)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
