package service

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/model"
	moduledto "ecodrip-server/internal/modules/maps/dto"
	"ecodrip-server/internal/observability/metrics"
	"ecodrip-server/internal/ownership"
	platformservice "ecodrip-server/internal/platform/service"
	"ecodrip-server/internal/storage"

	"gorm.io/gorm"
)

const defaultMaxUploadMB = 10

// Upload validates the image, writes it to storage and records the map.
// The file is removed again when the row cannot be written.
func (s *Service) Upload(ownerID string, file *multipart.FileHeader, req moduledto.UploadMapRequest) (*moduledto.MapResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, platformservice.NewValidationError("Title is required")
	}
	if file == nil {
		return nil, platformservice.NewValidationError("No file uploaded")
	}

	cfg := config.Get().Upload
	ext, ok := storage.AllowedExtension(file.Filename, cfg.AllowedExtensions)
	if !ok {
		metrics.ObserveMapUpload("rejected", 0)
		return nil, platformservice.NewValidationError("Only image files are allowed")
	}
	maxMB := cfg.MaxSize
	if maxMB <= 0 {
		maxMB = defaultMaxUploadMB
	}
	if file.Size > int64(maxMB)*1024*1024 {
		metrics.ObserveMapUpload("rejected", 0)
		return nil, platformservice.NewValidationError(fmt.Sprintf("File exceeds the maximum size of %d MB", maxMB))
	}

	src, err := file.Open()
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to read uploaded file", err)
	}
	defer func() { _ = src.Close() }()

	info, err := storage.InspectImage(src, ext)
	if err != nil {
		metrics.ObserveMapUpload("rejected", 0)
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, platformservice.NewValidationError("Uploaded file is not a valid image")
		}
		return nil, platformservice.WrapInternal("Failed to inspect uploaded file", err)
	}

	now := time.Now()
	relPath, written, err := s.files.Save(src, ext, now)
	if err != nil {
		metrics.ObserveMapUpload("error", 0)
		return nil, platformservice.WrapInternal("Failed to store uploaded file", err)
	}

	m := &model.MapImage{
		Title:       title,
		Description: normalizeDescription(req.Description),
		ImagePath:   relPath,
		Width:       info.Width,
		Height:      info.Height,
		Size:        written,
		MimeType:    info.MimeType,
		UploadedAt:  now,
		OwnerID:     ownerID,
	}
	if err := s.mapStore.Create(m); err != nil {
		s.removeFile(relPath)
		metrics.ObserveMapUpload("error", 0)
		return nil, platformservice.WrapInternal("Failed to upload map", err)
	}

	metrics.ObserveMapUpload("success", written)
	return s.toResponse(m, []model.Sprinkler{}, nil), nil
}

func (s *Service) List(ownerID string) ([]moduledto.MapResponse, error) {
	maps, err := s.mapStore.ListByOwner(ownerID)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to fetch maps", err)
	}
	out := make([]moduledto.MapResponse, 0, len(maps))
	for i := range maps {
		out = append(out, *s.toResponse(&maps[i], maps[i].Sprinklers, nil))
	}
	return out, nil
}

// Get returns the map with its sprinklers and owner profile.
func (s *Service) Get(id, ownerID string) (*moduledto.MapResponse, error) {
	if _, err := s.guard.Map(id, ownerID); err != nil {
		return nil, err
	}
	m, err := s.mapStore.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(ownership.MapNotFoundMessage)
		}
		return nil, platformservice.WrapInternal("Failed to fetch map", err)
	}
	owner := m.Owner.Summary()
	return s.toResponse(m, m.Sprinklers, &owner), nil
}

// Update changes title and description only. Absent fields are left alone.
func (s *Service) Update(id, ownerID string, req moduledto.UpdateMapRequest) (*moduledto.MapResponse, error) {
	m, err := s.guard.Map(id, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if req.Title.Null || title == "" {
			return nil, platformservice.NewValidationError("Title cannot be empty")
		}
		fields["title"] = title
	}
	if req.Description.Set {
		if desc := normalizeDescription(req.Description.Ptr()); desc != nil {
			fields["description"] = *desc
		} else {
			fields["description"] = nil
		}
	}

	if err := s.mapStore.UpdateFields(m, fields); err != nil {
		return nil, platformservice.WrapInternal("Failed to update map", err)
	}
	return s.Get(id, ownerID)
}

// Delete removes the map and its sprinklers, then the stored file.
// A file that cannot be removed is logged and left behind.
func (s *Service) Delete(id, ownerID string) error {
	m, err := s.guard.Map(id, ownerID)
	if err != nil {
		return err
	}
	if err := s.mapStore.DeleteWithSprinklers(m.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError(ownership.MapNotFoundMessage)
		}
		return platformservice.WrapInternal("Failed to delete map", err)
	}
	s.removeFile(m.ImagePath)
	return nil
}

func (s *Service) removeFile(relPath string) {
	if err := s.files.Remove(relPath); err != nil {
		metrics.ObserveFileCleanupFailure()
		log.Printf("⚠️ Failed to remove map file %s: %v", relPath, err)
	}
}

func (s *Service) toResponse(m *model.MapImage, sprinklers []model.Sprinkler, owner *model.UserSummary) *moduledto.MapResponse {
	if sprinklers == nil {
		sprinklers = []model.Sprinkler{}
	}
	return &moduledto.MapResponse{
		MapImage:   *m,
		ImageURL:   s.files.URL(m.ImagePath),
		Sprinklers: sprinklers,
		Owner:      owner,
	}
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
