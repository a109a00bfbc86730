package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when a lookup misses.
// Services translate it into the user-facing taxonomy.
var ErrNotFound = errors.New("record not found")

// translate maps gorm's sentinel onto the repository one.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
