package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida as tags `validate` e devolve um erro de negócio
// apontando o primeiro campo inválido.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return httperr.ErrValidation(
			"invalid_request",
			fmt.Sprintf("Campo '%s' inválido (%s).", fe.Field(), describeTag(fe)),
		)
	}

	return httperr.ErrValidation("invalid_request", err.Error())
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	}
	return fe.Tag()
}
