package main

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerFieldNames sync.Once

// useWireFieldNames makes validation errors report json or form field names
// instead of Go struct field names.
func useWireFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

// invalidRequest answers 422 with one entry per invalid field
func invalidRequest(c *gin.Context, location string, err error) {
	c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{Detail: fieldErrors(location, err)})
}

func fieldErrors(location string, err error) []model.FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []model.FieldError{{
			Loc:  []string{location},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}

	out := make([]model.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, model.FieldError{
			Loc:  []string{location, fe.Field()},
			Msg:  fieldMessage(fe),
			Type: "value_error." + fe.Tag(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
