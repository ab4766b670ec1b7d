package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"todolist/shared/constant"
	"todolist/shared/failure"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate    *val.Validate
	formDecoder *form.Decoder
	conform     *mold.Transformer
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Messages name fields by their label tag, then their form tag.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"label", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	formDecoder = form.NewDecoder()
	conform = modifiers.New()
}

// Validate reads JSON from the given io.Reader into data and validates it.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateForm decodes a url-encoded form body into data using its form
// tags, applies its `mod` tags (https://github.com/go-playground/mold) and
// validates the result.
func ValidateForm[T any](r *http.Request, data *T) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constant.RequestMaxMemory)

	if err := r.ParseForm(); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse form: %w", err)) //nolint:wrapcheck
	}

	if err := formDecoder.Decode(data, r.PostForm); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode form: %w", err)) //nolint:wrapcheck
	}

	if err := conform.Struct(r.Context(), data); err != nil {
		return fmt.Errorf("failed to apply form modifiers: %w", err)
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
