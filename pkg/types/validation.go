package types

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FUNCTIONAL DISCOVERY: Phone numbers arrive hand-typed from QR forms and
// voice transcripts, so only the character set is checked, not a country format
var phoneRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the complaint rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

// CreateComplaintRequest is the public submission form.
type CreateComplaintRequest struct {
	StationID     string `json:"stationId" validate:"required,uuid"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=10,max=20,phone"`
	Category      string `json:"category" validate:"required,min=2,max=50"`
	Description   string `json:"description" validate:"required,min=10,max=2000"`
}

// Validate checks the submission against the form rules.
func (r *CreateComplaintRequest) Validate() error {
	if err := Validator().Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidComplaint, describe(err))
	}
	return nil
}

// StationRequest is the admin create/update body for stations.
// IsActive is only honoured on update.
type StationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Location    string `json:"location" validate:"max=200"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

// Validate checks the station body.
func (r *StationRequest) Validate() error {
	if err := Validator().Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStation, describe(err))
	}
	return nil
}

// Validate requires at least one of status or priority and checks both
// against the allowed values.
func (u *StatusUpdate) Validate() error {
	if u.Status == "" && u.Priority == "" {
		return ErrEmptyStatusUpdate
	}
	if err := Validator().Struct(u); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatusUpdate, describe(err))
	}
	return nil
}

// IsValidStatus reports whether s is a known complaint status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsValidStationAction reports whether a is one of created/updated/deleted.
func IsValidStationAction(a StationAction) bool {
	switch a {
	case StationCreated, StationUpdated, StationDeleted:
		return true
	default:
		return false
	}
}

// describe flattens validator errors into "field: rule" pairs for API responses.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
