package session

import (
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

const (
	msgCustomerRequired = "Customer ID cannot be empty."
	msgWrongPassword    = "Incorrect password. Access denied."
	msgOrderEmpty       = "Your order is empty."
	msgNoCustomer       = "Set a customer ID first."
	msgAdminRequired    = "Admin mode is required to change the menu."
	msgNotCustomizing   = "no item is being customized"
)

func errNoActiveCustomer() error {
	return pkgerrors.New(pkgerrors.CodeNoCustomer, msgNoCustomer)
}

func IsValidation(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeValidation)
}

func IsUnknownAddOn(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeUnknownAddOn)
}

// IsAuthorization covers both a wrong admin password and a mutation attempted outside admin mode.
func IsAuthorization(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) || pkgerrors.HasCode(err, pkgerrors.CodeForbidden)
}

func IsNoActiveCustomer(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeNoCustomer)
}

func IsStateConflict(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeStateConflict)
}

func IsNotFound(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeNotFound)
}
