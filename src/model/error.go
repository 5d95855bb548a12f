package model

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable covers failed or empty market data fetches. The cycle is
// aborted and retried on the next tick.
var ErrDataUnavailable = errors.New("market data is unavailable")

// ErrInsufficientData means the kline history is shorter than the EMA period.
var ErrInsufficientData = errors.New("not enough klines to calculate EMA")

// ErrInsufficientBalance means equity is below the tradable minimum.
var ErrInsufficientBalance = errors.New("balance is below the tradable minimum")

// ErrQuantityBelowMinimum means the sized quantity is below the venue minimum
// order quantity. The order is abandoned before any mutating call.
var ErrQuantityBelowMinimum = errors.New("quantity is below the minimum order size")

// VenueError is a business rejection from the exchange (retCode != 0).
type VenueError struct {
	Code    int64
	Message string
}

func (e VenueError) Error() string {
	return fmt.Sprintf("venue rejected request [%d]: %s", e.Code, e.Message)
}

func NewVenueError(code int64, message string) VenueError {
	return VenueError{Code: code, Message: message}
}

func IsVenueError(err error) bool {
	var venueError VenueError
	return errors.As(err, &venueError)
}
