package service

import (
	"errors"
	"math"
	"strings"

	"ecodrip-server/internal/model"
	moduledto "ecodrip-server/internal/modules/sprinkler/dto"
	"ecodrip-server/internal/observability/metrics"
	"ecodrip-server/internal/ownership"
	"ecodrip-server/internal/placement"
	platformservice "ecodrip-server/internal/platform/service"

	"gorm.io/gorm"
)

const (
	ratioRequiredMessage = "xRatio and yRatio are required"
	ratioRangeMessage    = "xRatio and yRatio must be between 0 and 1"
	flowRateMessage      = "flowRate must be a non-negative number"
)

// Create adds a sprinkler to a map owned by ownerID. active defaults to true.
func (s *Service) Create(mapID, ownerID string, req moduledto.CreateSprinklerRequest) (*moduledto.SprinklerResponse, error) {
	if req.XRatio == nil || req.YRatio == nil {
		return nil, platformservice.NewValidationError(ratioRequiredMessage)
	}
	if !placement.ValidRatio(*req.XRatio) || !placement.ValidRatio(*req.YRatio) {
		return nil, platformservice.NewValidationError(ratioRangeMessage)
	}
	if req.FlowRate != nil && !validFlowRate(*req.FlowRate) {
		return nil, platformservice.NewValidationError(flowRateMessage)
	}

	m, err := s.guard.Map(mapID, ownerID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sp := &model.Sprinkler{
		MapID:    m.ID,
		Label:    normalizeLabel(req.Label),
		XRatio:   *req.XRatio,
		YRatio:   *req.YRatio,
		Active:   active,
		FlowRate: req.FlowRate,
		Metadata: req.Metadata,
	}
	if err := s.store.Create(sp); err != nil {
		return nil, platformservice.WrapInternal("Failed to add sprinkler", err)
	}

	metrics.ObserveSprinklerOperation("create")
	return withMap(sp, m), nil
}

// List returns the map's sprinklers oldest first.
func (s *Service) List(mapID, ownerID string) ([]model.Sprinkler, error) {
	if _, err := s.guard.Map(mapID, ownerID); err != nil {
		return nil, err
	}
	sprinklers, err := s.store.ListByMapID(mapID)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to fetch sprinklers", err)
	}
	if sprinklers == nil {
		sprinklers = []model.Sprinkler{}
	}
	return sprinklers, nil
}

// Update applies the members present in req; last write wins.
func (s *Service) Update(id, ownerID string, req moduledto.UpdateSprinklerRequest) (*moduledto.SprinklerResponse, error) {
	sp, m, err := s.guard.Sprinkler(id, ownerID)
	if err != nil {
		return nil, err
	}

	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateFields(sp, fields); err != nil {
		return nil, platformservice.WrapInternal("Failed to update sprinkler", err)
	}

	updated, err := s.store.FindByID(sp.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(ownership.SprinklerNotFoundMessage)
		}
		return nil, platformservice.WrapInternal("Failed to update sprinkler", err)
	}

	metrics.ObserveSprinklerOperation("update")
	return withMap(updated, m), nil
}

func (s *Service) Delete(id, ownerID string) error {
	sp, _, err := s.guard.Sprinkler(id, ownerID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(sp.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError(ownership.SprinklerNotFoundMessage)
		}
		return platformservice.WrapInternal("Failed to delete sprinkler", err)
	}
	metrics.ObserveSprinklerOperation("delete")
	return nil
}

// Place resolves a canvas click. In add mode it creates a sprinkler with the
// next default label; in select mode it returns the first stored sprinkler
// within the hit radius.
func (s *Service) Place(mapID, ownerID string, req moduledto.PlacementRequest) (*moduledto.PlacementResponse, error) {
	mode, err := placement.ParseMode(req.Mode)
	if err != nil {
		return nil, platformservice.NewValidationError(err.Error())
	}
	if req.X == nil || req.Y == nil {
		return nil, platformservice.NewValidationError("x and y are required")
	}
	point, err := placement.Normalize(*req.X, *req.Y, req.Width, req.Height)
	if err != nil {
		return nil, platformservice.NewValidationError(err.Error())
	}

	m, err := s.guard.Map(mapID, ownerID)
	if err != nil {
		return nil, err
	}

	switch mode {
	case placement.ModeAdd:
		return s.placeNew(m, point)
	default:
		return s.selectExisting(m, *req.X, *req.Y, req.Width, req.Height)
	}
}

func (s *Service) placeNew(m *model.MapImage, point placement.Point) (*moduledto.PlacementResponse, error) {
	count, err := s.store.CountByMapID(m.ID)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to add sprinkler", err)
	}
	label := placement.DefaultLabel(int(count))
	sp := &model.Sprinkler{
		MapID:  m.ID,
		Label:  &label,
		XRatio: point.XRatio,
		YRatio: point.YRatio,
		Active: true,
	}
	if err := s.store.Create(sp); err != nil {
		return nil, platformservice.WrapInternal("Failed to add sprinkler", err)
	}

	metrics.ObserveSprinklerOperation("create")
	metrics.ObservePlacement(string(placement.ModeAdd), "created")
	return &moduledto.PlacementResponse{
		Mode:      string(placement.ModeAdd),
		Created:   true,
		Sprinkler: *withMap(sp, m),
	}, nil
}

func (s *Service) selectExisting(m *model.MapImage, x, y, width, height float64) (*moduledto.PlacementResponse, error) {
	sprinklers, err := s.store.ListByMapID(m.ID)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to fetch sprinklers", err)
	}
	markers := make([]placement.Point, len(sprinklers))
	for i, sp := range sprinklers {
		markers[i] = placement.Point{XRatio: sp.XRatio, YRatio: sp.YRatio}
	}

	idx := placement.HitTest(markers, x, y, width, height)
	if idx < 0 {
		metrics.ObservePlacement(string(placement.ModeSelect), "miss")
		return nil, platformservice.NewNotFoundError("No sprinkler at this position")
	}

	metrics.ObservePlacement(string(placement.ModeSelect), "hit")
	return &moduledto.PlacementResponse{
		Mode:      string(placement.ModeSelect),
		Sprinkler: *withMap(&sprinklers[idx], m),
	}, nil
}

func updateFields(req moduledto.UpdateSprinklerRequest) (map[string]any, error) {
	fields := map[string]any{}

	if req.XRatio.Set {
		if req.XRatio.Null || !placement.ValidRatio(req.XRatio.Value) {
			return nil, platformservice.NewValidationError(ratioRangeMessage)
		}
		fields["x_ratio"] = req.XRatio.Value
	}
	if req.YRatio.Set {
		if req.YRatio.Null || !placement.ValidRatio(req.YRatio.Value) {
			return nil, platformservice.NewValidationError(ratioRangeMessage)
		}
		fields["y_ratio"] = req.YRatio.Value
	}
	if req.Active.Set {
		if req.Active.Null {
			return nil, platformservice.NewValidationError("active must be true or false")
		}
		fields["active"] = req.Active.Value
	}
	if req.Label.Set {
		if label := normalizeLabel(req.Label.Ptr()); label != nil {
			fields["label"] = *label
		} else {
			fields["label"] = nil
		}
	}
	if req.FlowRate.Set {
		if req.FlowRate.Null {
			fields["flow_rate"] = nil
		} else {
			if !validFlowRate(req.FlowRate.Value) {
				return nil, platformservice.NewValidationError(flowRateMessage)
			}
			fields["flow_rate"] = req.FlowRate.Value
		}
	}
	if req.Metadata.Set {
		if req.Metadata.Null || req.Metadata.Value == nil {
			fields["metadata"] = nil
		} else {
			fields["metadata"] = req.Metadata.Value
		}
	}
	return fields, nil
}

func withMap(sp *model.Sprinkler, m *model.MapImage) *moduledto.SprinklerResponse {
	return &moduledto.SprinklerResponse{
		Sprinkler: *sp,
		Map:       &moduledto.MapRef{ID: m.ID, Title: m.Title},
	}
}

func normalizeLabel(label *string) *string {
	if label == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*label)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validFlowRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
