package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// 0x-prefixed, non-zero 20-byte address
	_ = v.RegisterValidation("evmaddr", func(fl validator.FieldLevel) bool {
		_, err := parseAddress(fl.Field().String())
		return err == nil
	})
	// base-10 unsigned integer that fits in 256 bits
	_ = v.RegisterValidation("uint256", func(fl validator.FieldLevel) bool {
		_, err := uint256.FromDecimal(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "evmaddr":
			out = append(out, FieldError{Field: field, Message: "must be a non-zero 0x-prefixed address"})
		case "uint256":
			out = append(out, FieldError{Field: field, Message: "must be a base-10 integer within uint256"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

var errBadAddress = errors.New("must be a non-zero 0x-prefixed address")

func parseAddress(raw string) (common.Address, error) {
	if !strings.HasPrefix(raw, "0x") || !common.IsHexAddress(raw) {
		return common.Address{}, errBadAddress
	}
	a := common.HexToAddress(raw)
	if a == (common.Address{}) {
		return common.Address{}, errBadAddress
	}
	return a, nil
}
