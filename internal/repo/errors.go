package repo

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrUserNotFound       = errors.New("user not found")

	// ErrDuplicatedValueUnique surfaces a unique-constraint violation.
	ErrDuplicatedValueUnique = errors.New("duplicated value on unique column")

	// ErrInvalidQuantityChange means an adjustment would drive stock negative.
	ErrInvalidQuantityChange = errors.New("quantity change would make stock negative")

	// ErrInsufficientStock aborts a checkout whose line quantity exceeds the
	// stock available at commit time. The whole sale rolls back.
	ErrInsufficientStock = errors.New("insufficient stock for sale item")
)
