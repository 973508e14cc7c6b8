package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Location struct {
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Address     string       `json:"address" bson:"address"`
}

type SearchCriteria struct {
	CarType   string    `json:"carType" bson:"carType"`
	StartDate time.Time `json:"startDate" bson:"startDate"`
	EndDate   time.Time `json:"endDate" bson:"endDate"`
	StartTime string    `json:"startTime" bson:"startTime"`
	EndTime   string    `json:"endTime" bson:"endTime"`
}

type SelectedCar struct {
	Car      primitive.ObjectID `json:"car" bson:"car"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// BookingDetails holds everything a booking records apart from its identity
// and owner. It is shared by the stored and the populated forms.
type BookingDetails struct {
	SearchCriteria    SearchCriteria `json:"searchCriteria" bson:"searchCriteria"`
	SelectedCars      []SelectedCar  `json:"selectedCars" bson:"selectedCars"`
	PickupLocation    Location       `json:"pickupLocation" bson:"pickupLocation"`
	DropoffLocation   Location       `json:"dropoffLocation" bson:"dropoffLocation"`
	Distance          *float64       `json:"distance,omitempty" bson:"distance,omitempty"`
	ContactName       string         `json:"contactName" bson:"contactName"`
	ContactNo         string         `json:"contactNo" bson:"contactNo"`
	ContactEmail      string         `json:"contactEmail" bson:"contactEmail"`
	TotalPrice        float64        `json:"totalPrice" bson:"totalPrice"`
	ChauffeurSelected bool           `json:"chauffeurSelected" bson:"chauffeurSelected"`
	Breakdown         map[string]any `json:"breakdown,omitempty" bson:"breakdown,omitempty"`
	BookingDateTime   time.Time      `json:"bookingDateTime" bson:"bookingDateTime"`
}

type Booking struct {
	ID             string             `json:"_id,omitempty" bson:"_id,omitempty"`
	UserInfo       primitive.ObjectID `json:"userInfo" bson:"userInfo"`
	BookingDetails `bson:",inline"`
}

// PopulatedBooking is a booking with its owner expanded in place of the id.
type PopulatedBooking struct {
	ID             string `json:"_id,omitempty" bson:"_id,omitempty"`
	UserInfo       *User  `json:"userInfo" bson:"userInfo"`
	BookingDetails `bson:",inline"`
}

type UserRef struct {
	ID string `json:"_id" validate:"required,mongodb"`
}

type CoordinatesRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

type LocationRequest struct {
	Coordinates *CoordinatesRequest `json:"coordinates" validate:"omitempty"`
	Address     string              `json:"address" validate:"required,min=1,max=500"`
}

// SearchCriteriaRequest dates accept either a calendar date (2006-01-02) or RFC 3339.
type SearchCriteriaRequest struct {
	CarType   string `json:"carType" validate:"required,min=1,max=50"`
	StartDate string `json:"startDate" validate:"required,booking_date"`
	EndDate   string `json:"endDate" validate:"required,booking_date"`
	StartTime string `json:"startTime" validate:"required,min=1,max=20"`
	EndTime   string `json:"endTime" validate:"required,min=1,max=20"`
}

type SelectedCarRequest struct {
	Car      string `json:"car" validate:"required,mongodb"`
	Quantity *int   `json:"quantity" validate:"omitempty,min=1,max=100"`
}

type BookingRequest struct {
	UserInfo          *UserRef               `json:"userInfo" validate:"required"`
	SearchCriteria    *SearchCriteriaRequest `json:"searchCriteria" validate:"required"`
	SelectedCars      []SelectedCarRequest   `json:"selectedCars" validate:"required,min=1,max=20,dive"`
	PickupLocation    *LocationRequest       `json:"pickupLocation" validate:"required"`
	DropoffLocation   *LocationRequest       `json:"dropoffLocation" validate:"required"`
	Distance          *float64               `json:"distance" validate:"omitempty,gte=0"`
	ContactName       string                 `json:"contactName" validate:"required,min=1,max=100"`
	ContactNo         string                 `json:"contactNo" validate:"required,contact_no"`
	ContactEmail      string                 `json:"contactEmail" validate:"required,email,max=254"`
	TotalPrice        *float64               `json:"totalPrice" validate:"required,gte=0"`
	ChauffeurSelected *bool                  `json:"chauffeurSelected"`
	Breakdown         map[string]any         `json:"breakdown"`
	BookingDateTime   *time.Time             `json:"bookingDateTime"`
}

type BookingCreated struct {
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}

type BookingList struct {
	Bookings []*PopulatedBooking `json:"bookings"`
}
