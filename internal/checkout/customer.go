package checkout

import (
	"reflect"
	"strings"

	"github.com/magari-ke/storefront/pkg/enums"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Customer carries the checkout form fields merged into the order request.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Country string `json:"country" validate:"required"`
	County  string `json:"county" validate:"required"`
	Payment string `json:"payment" validate:"required,payment_method"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return enums.PaymentMethod(fl.Field().String()).IsValid()
	})
	return v
}

func validateCustomer(customer Customer) error {
	if err := validate.Struct(customer); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "customer details are incomplete").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "payment_method":
		return "must be one of mpesa, card, bank"
	}
	return "is invalid"
}
