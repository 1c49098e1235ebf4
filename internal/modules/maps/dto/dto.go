package dto

import (
	"ecodrip-server/internal/model"
	"ecodrip-server/internal/modules/common/patch"
)

type UpdateMapRequest struct {
	Title       patch.Field[string] `json:"title"`
	Description patch.Field[string] `json:"description"`
}

// MapResponse is a map as returned by the API. Sprinklers are always present
// (possibly empty); Owner only on the detail endpoint.
type MapResponse struct {
	model.MapImage
	ImageURL   string             `json:"imageUrl"`
	Sprinklers []model.Sprinkler  `json:"sprinklers"`
	Owner      *model.UserSummary `json:"owner,omitempty"`
}

type UploadMapRequest struct {
	Title       string
	Description *string
}
