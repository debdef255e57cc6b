package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeCatalogLoad   Code = "CATALOG_LOAD_ERROR"
	CodeEmptyCart     Code = "EMPTY_CART"
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeOrderRejected Code = "ORDER_REJECTED"
	CodeOrderFailed   Code = "ORDER_FAILED"
	CodeNetwork       Code = "NETWORK_ERROR"
	CodeSubmitBusy    Code = "SUBMISSION_IN_FLIGHT"
	CodeAuthDenied    Code = "AUTH_DENIED"
	CodeInternal      Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable      bool
	UserMessage    string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeCatalogLoad: {
		Retryable:      true,
		UserMessage:    "could not load the catalog",
		DetailsAllowed: true,
	},
	CodeEmptyCart: {
		Retryable:   false,
		UserMessage: "your cart is empty",
	},
	CodeValidation: {
		Retryable:      false,
		UserMessage:    "validation failed",
		DetailsAllowed: true,
	},
	CodeOrderRejected: {
		Retryable:   false,
		UserMessage: "order was not accepted",
	},
	CodeOrderFailed: {
		Retryable:   true,
		UserMessage: "could not place order",
	},
	CodeNetwork: {
		Retryable:   true,
		UserMessage: "a network error occurred, check that the server is reachable",
	},
	CodeSubmitBusy: {
		Retryable:   false,
		UserMessage: "an order submission is already in progress",
	},
	CodeAuthDenied: {
		Retryable:   false,
		UserMessage: "invalid password",
	},
	CodeInternal: {
		Retryable:   false,
		UserMessage: "something went wrong",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// UserMessage resolves the text shown to the user for any error: the typed
// message when one was set, otherwise the code's fallback.
func UserMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).UserMessage
	}
	if msg := typed.Message(); msg != "" {
		return msg
	}
	return MetadataFor(typed.Code()).UserMessage
}
