package usecase

import (
	"fmt"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
)

// ValidateAddress checks that an address carries every mandatory field.
func ValidateAddress(kind string, a model.Address) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %s address is incomplete", domainErrors.ErrValidation, kind)
	}
	return nil
}

// ValidateActor checks that an acting party identifier is present.
func ValidateActor(actorID string) error {
	if actorID == "" {
		return fmt.Errorf("%w: actor id is required", domainErrors.ErrValidation)
	}
	return nil
}
