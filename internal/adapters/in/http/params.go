package http

import (
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parseUUID(id.String(), name)
}

func parseUUID(s, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(s)
	if err == nil {
		err = id.Validate()
	}
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// queryParam binds an optional query parameter into dest, leaving it
// untouched when absent.
func queryParam(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func optionalMoney(s *string, name string) (*kernel.Money, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(*s)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &m, nil
}
