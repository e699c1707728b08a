package services

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidItem        = errors.New("cart contains an item that cannot be ordered")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrForbidden          = errors.New("not allowed to act on this resource")
	ErrKitchenNotFound    = errors.New("kitchen not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidTier        = errors.New("invalid subscription tier")
	ErrAlreadySubscribed  = errors.New("an active subscription already exists")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")
)
