package create_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one service item is required", ErrInvalidInput)
	}

	for i, item := range req.Items {
		if item.ServiceID <= 0 {
			return fmt.Errorf("%w: items[%d].serviceID must be positive", ErrInvalidInput, i)
		}
		if item.DurationTierID <= 0 {
			return fmt.Errorf("%w: items[%d].durationTierID must be positive", ErrInvalidInput, i)
		}
	}

	return nil
}
