package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

// validateRequest валидирует контактные данные клиента
// Дата, окно и длительность проверяются движком доступности
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerAddress = strings.TrimSpace(req.CustomerAddress)

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxPhoneLength || !isPhone(req.CustomerPhone) {
		return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}

	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(req.CustomerEmail) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(req.CustomerEmail); err != nil || addr.Address != req.CustomerEmail {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if req.CustomerAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerAddress) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is too long", ErrInvalidInput)
	}

	if req.Vehicle != nil && utf8.RuneCountInString(*req.Vehicle) > domain.MaxVehicleLength {
		return fmt.Errorf("%w: vehicle is too long", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isPhone допускает цифры, пробелы, +, -, скобки; минимум 6 цифр
func isPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 6
}
