package create_booking

import (
	"fmt"
	"strings"
)

const maxCustomerFieldLen = 255

// validateRequest валидация входных данных запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.SlotStart.Validate(); err != nil {
		return fmt.Errorf("%w: slot_start: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > maxCustomerFieldLen {
		return fmt.Errorf("%w: customer name too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") || len(email) > maxCustomerFieldLen {
		return fmt.Errorf("%w: customer email is invalid", ErrInvalidInput)
	}

	if len(req.CustomerPhone) > maxCustomerFieldLen {
		return fmt.Errorf("%w: customer phone too long", ErrInvalidInput)
	}

	return nil
}
