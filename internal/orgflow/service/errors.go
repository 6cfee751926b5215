package service

import (
	"errors"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
)

// lookupErr converts a failed single-row read into NotFound, or StoreFailure
// for anything other than a missing row.
func lookupErr(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, "%s not found", what)
	}
	return domain.StoreError("get "+what, err)
}

// writeErr converts a failed write. Duplicates become conflict, unless the
// caller passes a more specific sentinel.
func writeErr(err error, op string, onDuplicate *domain.Error) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		if onDuplicate == nil {
			onDuplicate = domain.ErrConflict
		}
		return domain.Errorf(onDuplicate, "%s", op)
	case errors.Is(err, store.ErrNotFound):
		return domain.Errorf(domain.ErrNotFound, "%s", op)
	}
	return domain.StoreError(op, err)
}

// passthrough keeps errors that already carry a domain kind and wraps the
// rest as store failures. Used on the error returned by WithTx.
func passthrough(err error, op string) error {
	if err == nil || domain.KindOf(err) != "" {
		return err
	}
	return domain.StoreError(op, err)
}
