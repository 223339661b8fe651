package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownColumn   = errors.New("unknown column for distinct values")

	ErrItemNotFound  = errors.New("item not found")
	ErrItemInUse     = errors.New("item is referenced by order lines")
	ErrOrderNotFound = errors.New("order not found")

	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrOrderUpdateFailed   = errors.New("order update failed")
	ErrOrderDeletionFailed = errors.New("order deletion failed")
)
