package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"fooddonation-backend/models"
)

// Fields owned by the store; a patch never overwrites them
var protectedFields = map[string]bool{
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// mergePatch overlays the top-level keys of patch onto existing and decodes the result into out
func mergePatch(existing interface{}, patch []byte, out interface{}) error {
	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil || changes == nil {
		return models.NewValidationError("body", models.ValidationFormat, "Request body must be a JSON object")
	}

	base, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	for key, value := range changes {
		if protectedFields[key] {
			continue
		}
		doc[key] = value
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode merged document: %w", err)
	}
	return decodeBody(merged, out)
}

// decodeBody decodes JSON, reporting type mismatches as validation errors
func decodeBody(body []byte, out interface{}) error {
	err := json.Unmarshal(body, out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return models.NewValidationError(typeErr.Field, models.ValidationFormat,
			fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
	}
	return models.NewValidationError("body", models.ValidationFormat, err.Error())
}
