package service

import (
	"context"
	"errors"
	"io"
	"time"

	tourserrors "sandgrund/internal/tours/errors"
	"sandgrund/internal/tours/repository"
	"sandgrund/internal/tours/validator"
	"sandgrund/pkg/auth"
	"sandgrund/pkg/config"
	apperrors "sandgrund/pkg/errors"
	"sandgrund/pkg/filter"
	"sandgrund/pkg/kafka"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/model"
	"sandgrund/pkg/sanitizer"

	"github.com/google/uuid"
)

const eventSource = "sandgrund-api"

type TourService interface {
	BookingsByYear(ctx context.Context, year int) ([]model.Booking, error)
	TourDocs(ctx context.Context) ([]model.YearDocument, error)
	Search(ctx context.Context, year int, criteria filter.Criteria) ([]model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	Overview(ctx context.Context, year int, w io.Writer) error
}

type tourService struct {
	repo      repository.TourRepository
	validator *validator.BookingValidator
	publisher kafka.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewTourService(
	repo repository.TourRepository,
	validator *validator.BookingValidator,
	publisher kafka.Publisher,
	cfg *config.Config,
) TourService {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &tourService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// BookingsByYear returns the bookings of year; a year nobody booked yet is
// an empty list, not an error.
func (s *tourService) BookingsByYear(ctx context.Context, year int) ([]model.Booking, error) {
	doc, err := s.repo.FindYear(ctx, year)
	if err != nil {
		if errors.Is(err, tourserrors.ErrYearNotFound) {
			return []model.Booking{}, nil
		}
		s.cfg.Log.Error("Failed to load tour document", "year", year, "error", err)
		return nil, apperrors.BadRequest("Failed to retrieve bookings", err)
	}
	if doc.Bookings == nil {
		return []model.Booking{}, nil
	}
	return doc.Bookings, nil
}

func (s *tourService) TourDocs(ctx context.Context) ([]model.YearDocument, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list tour documents", "error", err)
		return nil, apperrors.BadRequest("Failed to retrieve tour documents", err)
	}
	return docs, nil
}

func (s *tourService) Search(ctx context.Context, year int, criteria filter.Criteria) ([]model.Booking, error) {
	matcher, err := filter.Compile(criteria)
	if err != nil {
		appErr := apperrors.InvalidInput(err.Error())
		var criterionErr *filter.CriterionError
		if errors.As(err, &criterionErr) {
			appErr = appErr.WithDetails(map[string]any{"field": criterionErr.Field})
		}
		return nil, appErr
	}
	if ignored := matcher.Ignored(); len(ignored) > 0 {
		s.cfg.Log.Debug("Ignoring unknown booking filters", "fields", ignored)
	}

	bookings, err := s.BookingsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return matcher.Filter(bookings), nil
}

func (s *tourService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = uuid.NewString()
	if booking.Status == "" {
		booking.Status = model.StatusPending
	}
	booking.CreatedBy = auth.Actor(ctx)
	booking.Start = booking.Start.UTC()
	booking.End = booking.End.UTC()

	sanitizer.Booking(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	booking.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	if err := s.repo.AddBooking(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.BadRequest(err.Error(), err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"year", booking.Year,
		"start", booking.Start,
	)
	return nil
}

// Update merges the patch into the stored booking. A changed start year moves
// the booking to the other year document.
func (s *tourService) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindBooking(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check booking existence")
	}

	sanitizer.BookingUpdate(update)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := update.Apply(*existing)
	merged.Start = merged.Start.UTC()
	merged.End = merged.End.UTC()
	merged.UpdatedBy = auth.Actor(ctx)
	if err := s.validate(&merged); err != nil {
		return nil, err
	}

	if merged.PartitionYear() != existing.Year {
		err = s.repo.MoveBooking(ctx, &merged)
	} else {
		err = s.repo.ReplaceBooking(ctx, &merged)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, s.mapRepoError(err, id, "Failed to update booking")
	}

	if guideAssigned(existing, update) {
		s.publishGuideAssigned(ctx, &merged, update.GuideEmail)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "year", merged.Year)
	return &merged, nil
}

func (s *tourService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.RemoveBooking(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return s.mapRepoError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *tourService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "title", booking.Title, "error", err)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *tourService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, tourserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, tourserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.BadRequest(message, err)
}

func guideAssigned(before *model.Booking, update *model.BookingUpdate) bool {
	return update.Guide != nil &&
		*update.Guide != "" &&
		*update.Guide != before.Guide &&
		update.GuideEmail != ""
}

// publishGuideAssigned never fails the update; the booking is already stored.
func (s *tourService) publishGuideAssigned(ctx context.Context, booking *model.Booking, guideEmail string) {
	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithEventType(model.EventGuideAssigned).
		WithSchemaVersion(model.EventSchemaVersion).
		WithSource(eventSource).
		WithCorrelationID(logger.RequestID(ctx)).
		WithValue(model.NewGuideAssigned(booking, guideEmail, auth.Actor(ctx))).
		Build()
	if err != nil {
		s.cfg.Log.Error("Failed to build guide assignment event", "id", booking.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish guide assignment event", "id", booking.ID, "error", err)
	}
}
