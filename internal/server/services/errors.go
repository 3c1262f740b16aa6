package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/common"
)

// wrapInternal passes domain errors through and marks everything else as
// common.ErrorInternal, keeping the cause for logs.
func wrapInternal(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorInternal),
		errors.Is(err, common.ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
}
