package service

import "errors"

// Operation-level errors. The HTTP boundary maps these onto status
// codes; their text is what clients see.
var (
	ErrInvalidBikeID  = errors.New("invalid bike id")
	ErrBikeNotFound   = errors.New("bike not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrMissingFields  = errors.New("all required fields must be provided")
	ErrForbidden      = errors.New("you do not own this bike")
	ErrOwnPurchase    = errors.New("you cannot buy your own bike")
	ErrAlreadySold    = errors.New("this bike is already marked as sold")
	ErrBrandRequired  = errors.New("brand query param required")
	ErrBrandAndModel  = errors.New("brand and model query params required")
	ErrNoFiles        = errors.New("no files uploaded")
	ErrBikeIDRequired = errors.New("bike_id is required")

	ErrEmailPasswordRequired = errors.New("email and password are required")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token is revoked")

	ErrNoProfileFields       = errors.New("no valid fields provided to update")
	ErrPasswordFieldsMissing = errors.New("all password fields are required")
	ErrPasswordMismatch      = errors.New("new passwords do not match")
	ErrPasswordTooShort      = errors.New("new password must be at least 6 characters")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrEmailFieldsMissing    = errors.New("both current and new emails are required")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrWrongCurrentEmail     = errors.New("current email is incorrect")
	ErrSameEmail             = errors.New("new email is the same as current")
	ErrEmailInUse            = errors.New("email already in use")
	ErrMessageRequired       = errors.New("message is required")
)
