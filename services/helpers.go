package services

import (
	"errors"
	"fmt"
	"fooddonation-backend/models"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

func invalidStatus(status string) error {
	if status == "" {
		return models.NewValidationError("status", models.ValidationRequired, "")
	}
	return models.NewValidationError("status", models.ValidationEnum, fmt.Sprintf("`%s` is not a valid status", status))
}
