package domain

import "errors"

var (
	// Deal errors
	ErrDealNotFound            = errors.New("deal not found")
	ErrDuplicateDeal           = errors.New("deal with this unique id already exists")
	ErrDealConstraintViolation = errors.New("deal violates a storage constraint")
)
