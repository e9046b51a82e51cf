package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/uptask/uptask-backend/internal/apperror"
)

// Messages overrides the default text of a field error. Keys are either
// "field.tag" (e.g. "password.min") or just "field".
type Messages map[string]string

var tagNamesOnce sync.Once

// useWireNames makes validator report json/form names instead of Go field names.
func useWireNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// BindJSON decodes and validates the request body. An empty body is validated
// as a zero value so missing required fields are reported individually.
func BindJSON(c *gin.Context, dst any, msgs Messages) error {
	useWireNames()
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err != nil {
		return apperror.Validation(FieldErrors(err, msgs)...)
	}
	return nil
}

func BindQuery(c *gin.Context, dst any, msgs Messages) error {
	useWireNames()
	if err := c.ShouldBindQuery(dst); err != nil {
		return apperror.Validation(FieldErrors(err, msgs)...)
	}
	return nil
}

// FieldErrors converts binding and validation failures into client-facing field errors.
func FieldErrors(err error, msgs Messages) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, apperror.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe, msgs),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []apperror.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("El campo %s tiene un tipo no válido", field),
		}}
	}

	return []apperror.FieldError{{Field: "body", Message: "El cuerpo de la petición no es válido"}}
}

func fieldMessage(fe validator.FieldError, msgs Messages) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[fe.Field()]; ok {
		return m
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", fe.Field())
	case "email":
		return "Agrega un email válido"
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", fe.Field())
	}
}
