package utils

import (
	"errors"
	"reflect"
	"regexp"
	"schedule-ledger-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

var (
	serviceTypes        = []string{"diagnostics", "consultation", "session", "group_session", "repeat_diagnostics"}
	paymentTypeDetailed = []string{"single", "subscription4", "subscription8", "subscription12"}
	prepaidSizes        = []int64{0, 4, 8, 12}
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("date_only", validateDateOnly)
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("decimal", validateDecimal)
	validate.RegisterValidation("service_type", validateServiceType)
	validate.RegisterValidation("payment_type_detailed", validatePaymentTypeDetailed)
	validate.RegisterValidation("prepaid_size", validatePrepaidSize)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateUrlParamID accepts the uuid identifiers the ledger issues.
func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	_, err := uuid.Parse(param)
	return err
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.DateLayout, fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

func validateDecimal(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !amount.IsNegative()
}

func validateServiceType(fl validator.FieldLevel) bool {
	return containsString(serviceTypes, fl.Field().String())
}

func validatePaymentTypeDetailed(fl validator.FieldLevel) bool {
	return containsString(paymentTypeDetailed, fl.Field().String())
}

func validatePrepaidSize(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	for _, size := range prepaidSizes {
		if value == size {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
