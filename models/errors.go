package models

import "fmt"

// Error taxonomy shared by services and the HTTP boundary. Messages are
// client-safe; anything carrying internal detail stays in Err.

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

// ErrorAuthentication is a failed sign-in. It never says which part was wrong.
type ErrorAuthentication struct{}

func (e ErrorAuthentication) Error() string { return "invalid credentials" }

type ErrorUnauthenticated struct {
	Message string
}

func (e ErrorUnauthenticated) Error() string {
	if e.Message == "" {
		return "unauthenticated"
	}
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	if e.Message == "" {
		return "you are not allowed to perform this action"
	}
	return e.Message
}

type ErrorNotFound struct {
	Resource string
}

func (e ErrorNotFound) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// ErrorConflict reports a uniqueness violation on Field.
type ErrorConflict struct {
	Field string
}

func (e ErrorConflict) Error() string {
	if e.Field == "" {
		return "resource already exists"
	}
	return fmt.Sprintf("%s already exists", e.Field)
}

type ErrorInternalServer struct {
	Err error
}

func (e ErrorInternalServer) Error() string { return "Internal Server Error" }

func (e ErrorInternalServer) Unwrap() error { return e.Err }
