package service

import (
	"errors"
	"fmt"

	"github.com/opugacodez/frutaria/internal/store"
)

var (
	ErrNotFound           = store.ErrNotFound
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrValidation         = errors.New("invalid input")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCartExists         = errors.New("user already has a cart")
)

// missing names the record behind a bare store.ErrNotFound. Errors that
// already carry a name are passed through.
func missing(err error, format string, args ...any) error {
	if err == store.ErrNotFound {
		return fmt.Errorf(format+": %w", append(args, err)...)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
