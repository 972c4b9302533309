package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	guideserrors "sandgrund/internal/guides/errors"
	"sandgrund/internal/guides/repository"
	"sandgrund/internal/guides/validator"
	"sandgrund/pkg/auth"
	"sandgrund/pkg/config"
	apperrors "sandgrund/pkg/errors"
	"sandgrund/pkg/metrics"
	"sandgrund/pkg/model"
	"sandgrund/pkg/sanitizer"
	"sandgrund/pkg/storage"
)

const (
	MsgNoGuides        = "No guides in the database."
	MsgNoGuideMatch    = "No guide found with the provided filter options."
	MsgInvalidGuideID  = "Please enter a valid guide-id."
	MsgNoGuideIDUpload = "No guide id defined"
	MsgNotImage        = "Not an image, please upload an image."
)

// Photo is an uploaded guide picture as received from the client.
type Photo struct {
	Filename string
	Data     []byte
	// BaseURL is scheme://host of the upload request.
	BaseURL string
}

type GuideService interface {
	Create(ctx context.Context, guide *model.Guide) error
	List(ctx context.Context, query map[string]string) ([]model.Guide, error)
	Update(ctx context.Context, id string, update *model.GuideUpdate) (*model.Guide, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, photo Photo) (*model.Guide, error)
}

type guideService struct {
	repo      repository.GuideRepository
	validator *validator.GuideValidator
	images    storage.ImageStore
	metrics   *metrics.Metrics
	cfg       *config.Config
	now       func() time.Time
}

func NewGuideService(
	repo repository.GuideRepository,
	validator *validator.GuideValidator,
	images storage.ImageStore,
	m *metrics.Metrics,
	cfg *config.Config,
) GuideService {
	return &guideService{
		repo:      repo,
		validator: validator,
		images:    images,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create stores a new, active guide. Any failure is reported as 400 with
// the underlying message.
func (s *guideService) Create(ctx context.Context, guide *model.Guide) error {
	guide.ID = ""
	guide.Active = true
	guide.UpdatedBy = auth.Actor(ctx)
	sanitizer.Guide(guide)

	if err := s.validator.Validate(guide); err != nil {
		s.cfg.Log.Warn("Guide validation failed", "email", guide.Email, "error", err)
		return apperrors.Validation(err.Error(), map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, guide); err != nil {
		s.cfg.Log.Error("Failed to create guide", "email", guide.Email, "error", err)
		return apperrors.BadRequest(err.Error(), err)
	}

	s.cfg.Log.Info("Guide created successfully", "id", guide.ID, "email", guide.Email)
	return nil
}

// List returns every stored guide, active or not, whose fields equal all of
// query after stringifying and lowercasing both sides.
func (s *guideService) List(ctx context.Context, query map[string]string) ([]model.Guide, error) {
	guides, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list guides", "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeNotFound, err.Error(), http.StatusNotFound)
	}
	if len(guides) == 0 {
		return nil, apperrors.NotFound(MsgNoGuides)
	}

	matched := make([]model.Guide, 0, len(guides))
	for i := range guides {
		if guides[i].MatchesAll(query) {
			matched = append(matched, guides[i])
		}
	}
	if len(matched) == 0 {
		return nil, apperrors.NotFound(MsgNoGuideMatch)
	}
	return matched, nil
}

// Update merges update into the guide and stamps updatedAt/updatedBy.
// Failures other than validation are reported as 404.
func (s *guideService) Update(ctx context.Context, id string, update *model.GuideUpdate) (*model.Guide, error) {
	if id == "" {
		return nil, apperrors.NotFound(MsgInvalidGuideID)
	}

	sanitizer.GuideUpdate(update)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Guide update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation(err.Error(), map[string]any{"error": err.Error()})
	}

	guide, err := s.repo.Update(ctx, id, update, auth.Actor(ctx))
	if err != nil {
		s.cfg.Log.Error("Failed to update guide", "id", id, "error", err)
		return nil, s.mapRepoError(err, id, http.StatusNotFound)
	}

	s.cfg.Log.Info("Guide updated successfully", "id", id)
	return guide, nil
}

// Delete is a soft delete: the guide is kept with active=false.
func (s *guideService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput(MsgInvalidGuideID)
	}

	if err := s.repo.SetActive(ctx, id, false, auth.Actor(ctx)); err != nil {
		s.cfg.Log.Error("Failed to deactivate guide", "id", id, "error", err)
		return s.mapRepoError(err, id, http.StatusBadRequest)
	}

	s.cfg.Log.Info("Guide deactivated", "id", id)
	return nil
}

// UploadPhoto validates and stores the picture, then points the guide's photo
// at it. The stored file is removed again if the guide cannot be updated.
func (s *guideService) UploadPhoto(ctx context.Context, id string, photo Photo) (*model.Guide, error) {
	if id == "" {
		return nil, apperrors.InvalidInput(MsgNoGuideIDUpload)
	}

	data, contentType, ext, err := storage.Prepare(photo.Filename, photo.Data, s.cfg.MaxImageWidth)
	if err != nil {
		s.metrics.UploadResult("rejected")
		if errors.Is(err, storage.ErrNotImage) {
			s.cfg.Log.Warn("Rejected guide photo", "id", id, "filename", photo.Filename, "error", err)
			return nil, apperrors.InvalidInput(MsgNotImage)
		}
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	url, err := s.images.Save(ctx, storage.Image{
		Name:        fmt.Sprintf("%d%s", s.now().UnixMilli(), ext),
		ContentType: contentType,
		Data:        data,
		BaseURL:     photo.BaseURL,
	})
	if err != nil {
		s.metrics.UploadResult("failed")
		s.cfg.Log.Error("Failed to store guide photo", "id", id, "error", err)
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	guide, err := s.repo.SetPhoto(ctx, id, url)
	if err != nil {
		s.metrics.UploadResult("failed")
		if delErr := s.images.Delete(ctx, url); delErr != nil {
			s.cfg.Log.Warn("Failed to remove orphaned guide photo", "url", url, "error", delErr)
		}
		s.cfg.Log.Error("Failed to set guide photo", "id", id, "error", err)
		return nil, s.mapRepoError(err, id, http.StatusBadRequest)
	}

	s.metrics.UploadResult("success")
	s.cfg.Log.Info("Guide photo uploaded", "id", id, "url", url)
	return guide, nil
}

func (s *guideService) mapRepoError(err error, id string, status int) error {
	switch {
	case errors.Is(err, guideserrors.ErrNotFound):
		return apperrors.WithStatus(apperrors.NotFoundWithID("Guide", id), status)
	case errors.Is(err, guideserrors.ErrInvalidID):
		return apperrors.WithStatus(apperrors.InvalidInput(MsgInvalidGuideID), status)
	}
	return apperrors.Wrap(err, apperrors.CodeBadRequest, err.Error(), status)
}
