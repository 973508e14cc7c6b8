package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "carrental/internal/bookings/errors"
	"carrental/internal/bookings/repository"
	"carrental/internal/bookings/validator"
	"carrental/pkg/config"
	"carrental/pkg/email"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"carrental/pkg/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgCreateFailed = "Failed to create booking and send confirmation email"
	MsgListFailed   = "Failed to fetch bookings"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error)
}

// Notifier delivers email without blocking or failing the caller.
type Notifier interface {
	Dispatch(ctx context.Context, msg email.Message)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	notifier  Notifier
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	notifier Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"contact_email", req.ContactEmail,
			"error", err,
		)
		return nil, validationError(err)
	}

	booking, err := s.toBooking(req)
	if err != nil {
		return nil, validationError(err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"user_id", booking.UserInfo.Hex(),
			"error", err,
		)
		return nil, apperrors.Internal(MsgCreateFailed, err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"user_id", booking.UserInfo.Hex(),
		"cars", len(booking.SelectedCars),
		"total_price", booking.TotalPrice,
	)

	msg, err := email.BookingConfirmation(booking)
	if err != nil {
		s.cfg.Log.Error("Failed to render booking confirmation",
			"id", booking.ID,
			"error", err,
		)
		return booking, nil
	}
	s.notifier.Dispatch(ctx, msg)

	return booking, nil
}

// ListForUser never fails on an unknown or malformed user id; there are simply no bookings.
func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidUserID) {
			s.cfg.Log.Debug("Bookings requested for malformed user id", "user_id", userID)
			return []*model.PopulatedBooking{}, nil
		}
		s.cfg.Log.Error("Failed to list bookings",
			"user_id", userID,
			"error", err,
		)
		return nil, apperrors.Internal(MsgListFailed, err)
	}

	if bookings == nil {
		bookings = []*model.PopulatedBooking{}
	}
	return bookings, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.ContactName = sanitizer.NormalizeName(req.ContactName)
	req.ContactEmail = sanitizer.NormalizeEmail(req.ContactEmail)
	req.ContactNo = sanitizer.NormalizePhone(req.ContactNo, s.cfg.DefaultPhoneRegion)

	if req.UserInfo != nil {
		req.UserInfo.ID = strings.TrimSpace(req.UserInfo.ID)
	}
	if req.SearchCriteria != nil {
		req.SearchCriteria.CarType = strings.ToLower(sanitizer.TrimAndNormalize(req.SearchCriteria.CarType))
		req.SearchCriteria.StartDate = strings.TrimSpace(req.SearchCriteria.StartDate)
		req.SearchCriteria.EndDate = strings.TrimSpace(req.SearchCriteria.EndDate)
		req.SearchCriteria.StartTime = strings.TrimSpace(req.SearchCriteria.StartTime)
		req.SearchCriteria.EndTime = strings.TrimSpace(req.SearchCriteria.EndTime)
	}
	for _, loc := range []*model.LocationRequest{req.PickupLocation, req.DropoffLocation} {
		if loc != nil {
			loc.Address = sanitizer.SanitizeAddress(loc.Address)
		}
	}
	for i := range req.SelectedCars {
		req.SelectedCars[i].Car = strings.TrimSpace(req.SelectedCars[i].Car)
	}
}

// toBooking converts a validated request and fills in defaults: quantity 1,
// no chauffeur, booked now.
func (s *bookingService) toBooking(req *model.BookingRequest) (*model.Booking, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserInfo.ID)
	if err != nil {
		return nil, err
	}
	startDate, err := validation.ParseDate(req.SearchCriteria.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := validation.ParseDate(req.SearchCriteria.EndDate)
	if err != nil {
		return nil, err
	}

	cars := make([]model.SelectedCar, 0, len(req.SelectedCars))
	for _, sc := range req.SelectedCars {
		carID, err := primitive.ObjectIDFromHex(sc.Car)
		if err != nil {
			return nil, err
		}
		quantity := 1
		if sc.Quantity != nil {
			quantity = *sc.Quantity
		}
		cars = append(cars, model.SelectedCar{Car: carID, Quantity: quantity})
	}

	booking := &model.Booking{
		UserInfo: userID,
		BookingDetails: model.BookingDetails{
			SearchCriteria: model.SearchCriteria{
				CarType:   req.SearchCriteria.CarType,
				StartDate: startDate,
				EndDate:   endDate,
				StartTime: req.SearchCriteria.StartTime,
				EndTime:   req.SearchCriteria.EndTime,
			},
			SelectedCars:    cars,
			PickupLocation:  toLocation(req.PickupLocation),
			DropoffLocation: toLocation(req.DropoffLocation),
			Distance:        req.Distance,
			ContactName:     req.ContactName,
			ContactNo:       req.ContactNo,
			ContactEmail:    req.ContactEmail,
			TotalPrice:      *req.TotalPrice,
			Breakdown:       req.Breakdown,
			BookingDateTime: s.now().UTC(),
		},
	}
	if req.ChauffeurSelected != nil {
		booking.ChauffeurSelected = *req.ChauffeurSelected
	}
	if req.BookingDateTime != nil && !req.BookingDateTime.IsZero() {
		booking.BookingDateTime = req.BookingDateTime.UTC()
	}
	return booking, nil
}

func toLocation(req *model.LocationRequest) model.Location {
	loc := model.Location{Address: req.Address}
	if req.Coordinates != nil {
		loc.Coordinates = &model.Coordinates{
			Lat: *req.Coordinates.Lat,
			Lng: *req.Coordinates.Lng,
		}
	}
	return loc
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Validation failed", map[string]any{
			"errors": verrs,
		})
	}
	return apperrors.Validation("Validation failed", map[string]any{
		"error": err.Error(),
	})
}
