package model

import "time"

type User struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	ContactNo string    `json:"contactNo" bson:"contactNo"`
	Email     string    `json:"email" bson:"email"`
	OTP       string    `json:"-" bson:"otp,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	ContactNo string `json:"contactNo" validate:"required,contact_no"`
	Email     string `json:"email" validate:"required,email,max=254"`
}

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	OTP   string `json:"otp" validate:"required,max=16"`
}

type LoginResult struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}
