package dtos

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/services"
	"github.com/exec-platform/asset-management/pkg/constants"
)

type CreateAssetDTO struct {
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
	Promoted bool   `json:"promoted"`
}

func (d *CreateAssetDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

func (d *CreateAssetDTO) ToInput() services.CreateAssetInput {
	return services.CreateAssetInput{
		ParentID: parseOptionalUUID(d.ParentID),
		Promoted: d.Promoted,
	}
}

type UpdateAssetDTO struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
	Promoted bool   `json:"promoted"`
}

func (d *UpdateAssetDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

func (d *UpdateAssetDTO) ToInput() services.UpdateAssetInput {
	return services.UpdateAssetInput{
		BodyID:   parseOptionalUUID(d.ID),
		ParentID: parseOptionalUUID(d.ParentID),
		Promoted: d.Promoted,
	}
}

func validate(dto interface{}) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		errorMessages[err.Field()] = err.Tag()
	}
	return errorMessages, false
}

// parseOptionalUUID assumes the value already passed uuid validation;
// empty strings map to uuid.Nil.
func parseOptionalUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
