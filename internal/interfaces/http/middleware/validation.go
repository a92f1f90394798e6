package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{6,20}$`)

// SetupValidator configures gin's validator: JSON field names in errors and
// the sellerid, phone and orderstatus tags
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	return RegisterValidators(v)
}

// RegisterValidators adds the storefront validation tags to v
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("sellerid", validateSellerID); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return err
	}
	return v.RegisterValidation("orderstatus", validateOrderStatus)
}

func validateSellerID(fl validator.FieldLevel) bool {
	_, err := shared.ParseSellerID(fl.Field().String())
	return err == nil
}

// validatePhone accepts digits with an optional leading +, ignoring whitespace
func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return trade.OrderStatus(fl.Field().String()).IsValid()
}

// IsValidPhone reports whether phone is a plausible phone number once normalized
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(shared.NormalizePhone(phone))
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDKey)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Type().Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " items"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	case "datetime":
		return "Must be a date formatted as " + e.Param()
	case "sellerid":
		return "Seller id must be 7 uppercase letters or digits"
	case "phone":
		return "Invalid phone number"
	case "orderstatus":
		return "Must be one of: processing processed cancelled refused"
	default:
		return "Invalid value"
	}
}
