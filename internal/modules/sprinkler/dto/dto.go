package dto

import (
	"ecodrip-server/internal/model"
	"ecodrip-server/internal/modules/common/patch"
)

type CreateSprinklerRequest struct {
	Label    *string       `json:"label"`
	XRatio   *float64      `json:"xRatio"`
	YRatio   *float64      `json:"yRatio"`
	Active   *bool         `json:"active"`
	FlowRate *float64      `json:"flowRate"`
	Metadata model.JSONMap `json:"metadata"`
}

// UpdateSprinklerRequest carries only the members the client sent.
// null clears label, flowRate and metadata.
type UpdateSprinklerRequest struct {
	Label    patch.Field[string]        `json:"label"`
	XRatio   patch.Field[float64]       `json:"xRatio"`
	YRatio   patch.Field[float64]       `json:"yRatio"`
	Active   patch.Field[bool]          `json:"active"`
	FlowRate patch.Field[float64]       `json:"flowRate"`
	Metadata patch.Field[model.JSONMap] `json:"metadata"`
}

// PlacementRequest is a click on the rendered map, in canvas pixels.
type PlacementRequest struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Mode   string   `json:"mode"`
}

type MapRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SprinklerResponse struct {
	model.Sprinkler
	Map *MapRef `json:"map,omitempty"`
}

type PlacementResponse struct {
	Mode      string            `json:"mode"`
	Created   bool              `json:"created"`
	Sprinkler SprinklerResponse `json:"sprinkler"`
}
