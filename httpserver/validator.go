package httpserver

import (
	"errors"
	"moviecatalog/errs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs go-playground/validator into echo and reports
// failures as EINVALID errors named after the JSON fields.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Errorf(errs.EINVALID, "validation error")
	}

	failures := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		// Drop the root struct name: "CreateMovieRequest.actors[0].id" -> "actors[0].id".
		_, field, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			field = fe.Field()
		}
		failures[i] = field + " failed on " + fe.Tag()
	}
	return errs.Errorf(errs.EINVALID, "validation error: %s", strings.Join(failures, "; "))
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
