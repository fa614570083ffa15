package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskapi/internal/core/model/response"
	"taskapi/internal/core/util"
)

const (
	LocationBody   = "body"
	LocationQuery  = "query"
	LocationParams = "params"

	invalidValue = "Invalid value"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	Validator.RegisterTagNameFunc(fieldName)

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	registerRules()
	addCustomTranslations()
}

func registerRules() {
	Validator.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})

	Validator.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, ok := util.ParseISO8601(fl.Field().String())
		return ok
	})

	Validator.RegisterValidation("intmin", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()

		min, err := strconv.ParseInt(fl.Param(), 10, 64)
		if err != nil {
			return false
		}

		parsed, ok := util.ParseInt(&value)
		return ok && parsed >= min
	})
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", displayName(fe.Field()))
		return t
	})

	Validator.RegisterTranslation("max", Translator, func(ut ut.Translator) error {
		return ut.Add("max", "{0} must not exceed {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", displayName(fe.Field()), fe.Param())
		return t
	})

	Validator.RegisterTranslation("objectid", Translator, func(ut ut.Translator) error {
		return ut.Add("objectid", "Invalid task ID", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("objectid")
		return t
	})

	for _, tag := range []string{"oneof", "iso8601", "intmin"} {
		Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return ut.Add(tag, invalidValue, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag())
			return t
		})
	}
}

// fieldName reports fields by their wire name, whichever binding tag they use.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]

		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return field.Name
}

func displayName(field string) string {
	fieldNames := map[string]string{
		"title":       "Title",
		"description": "Description",
		"status":      "Status",
		"priority":    "Priority",
		"dueDate":     "Due date",
		"id":          "ID",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

// ValidateStruct runs every rule declared on s and returns all violations,
// tagged with the request location they came from. Fields listed in skip
// already failed earlier and are not reported twice.
func ValidateStruct(location string, s any, skip ...string) []response.ValidationError {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}

	return FormatValidationErrors(location, err, skip...)
}

func FormatValidationErrors(location string, err error, skip ...string) []response.ValidationError {
	var errors []response.ValidationError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.ValidationError{{Field: location, Location: location, Message: invalidValue}}
	}

	for _, fieldError := range validationErrors {
		if contains(skip, fieldError.Field()) {
			continue
		}

		errors = append(errors, response.ValidationError{
			Field:    fieldError.Field(),
			Location: location,
			Message:  fieldError.Translate(Translator),
			Value:    valueOf(fieldError),
		})
	}

	return errors
}

func valueOf(fieldError validator.FieldError) any {
	value := fieldError.Value()

	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}

	return value
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
