package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeExclusionViolation = "23P01"
	codeForeignKey         = "23503"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
