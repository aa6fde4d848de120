package shared

import (
	"errors"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

// TranslateRepoErr turns a repository NOT_FOUND into notFound and marks any
// other repository failure as a database error. Domain errors pass through.
func TranslateRepoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	var repoErr infra.RepositoryError
	if errors.As(err, &repoErr) {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return err
}
