package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation - некорректный ввод; оборачивается с описанием поля
	ErrValidation = errors.New("validation failed")

	ErrGoalNotFound        = errors.New("goal not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvestmentNotFound  = errors.New("investment not found")

	ErrInvalidToken = errors.New("invalid token")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
