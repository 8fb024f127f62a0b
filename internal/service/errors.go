package service

import "errors"

var (
	// ErrInvalidCargoID is returned when cargo ID is empty.
	ErrInvalidCargoID = errors.New("invalid cargo id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRequestID is returned when request ID is empty.
	ErrInvalidRequestID = errors.New("invalid request id")

	// ErrMissingRequiredFields is returned when name, type, size, weight,
	// origin or destination is absent.
	ErrMissingRequiredFields = errors.New("name, type, size, weight, origin and destination are required")

	// ErrInvalidWeight is returned when weight is zero or negative.
	ErrInvalidWeight = errors.New("weight must be a positive number")

	// ErrInvalidSize is returned when size is not SMALL, MEDIUM or LARGE.
	ErrInvalidSize = errors.New("invalid cargo size")

	// ErrInvalidStatus is returned when a status update names an unknown status.
	ErrInvalidStatus = errors.New("invalid cargo status")

	// ErrInvalidCustomerID is returned when a cargo is created without a customer.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrRoleNotAllowed is returned when the caller's role may not perform the operation.
	ErrRoleNotAllowed = errors.New("role not allowed for this operation")

	// ErrNotCargoOwner is returned when a business touches another business's cargo.
	ErrNotCargoOwner = errors.New("cargo belongs to another business")

	// ErrNotADriver is returned when the referenced user is missing or not a driver.
	ErrNotADriver = errors.New("referenced user is not a driver")

	// ErrDriverHasActiveCargo is returned when the driver already carries
	// an undelivered cargo.
	ErrDriverHasActiveCargo = errors.New("driver already has an active cargo")

	// ErrCargoAlreadyAssigned is returned when accepting a cargo that has a driver.
	ErrCargoAlreadyAssigned = errors.New("cargo already assigned to a driver")

	// ErrAssignmentInProgress is returned when another assignment attempt
	// holds the driver's lock.
	ErrAssignmentInProgress = errors.New("another assignment for this driver is in progress")

	// ErrRequestNotPending is returned when accepting, rejecting, editing
	// or deleting a request that already left PENDING.
	ErrRequestNotPending = errors.New("cargo request is no longer pending")

	// ErrCargoDelivered is returned by tracking when the strict policy is
	// on and the cargo has been delivered.
	ErrCargoDelivered = errors.New("cargo already delivered")

	// ErrMissingCredentials is returned when username or password is absent.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrInvalidRole is returned when registration names an unknown role.
	ErrInvalidRole = errors.New("role must be business, driver or customer")

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login fails verification.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
