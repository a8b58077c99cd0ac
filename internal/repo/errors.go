package repo

import (
	"errors"

	"gorm.io/gorm"
)

// Business outcomes are ordinary returned errors, matched with errors.Is.
// Callers must be able to tell a missing row from a write that failed
// for other reasons.
var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("name already taken")
	ErrReferenceMissing = errors.New("referenced record does not exist")
	ErrWriteFailed      = errors.New("store write failed")
)

// translate maps gorm errors onto the repository taxonomy. The unique
// index backs up the pre-insert name check, so a lost check-then-insert
// race still surfaces as ErrConflict.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
