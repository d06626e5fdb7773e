package otfconvert

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nsip/otf-convert/internal/scheme"
	"github.com/pkg/errors"
)

//
// renders every error as {"detail": message}
//
// unknown scheme: 404
// invalid base: 400
// malformed payload: 422
//
func errorHandler(err error, c echo.Context) {

	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := http.StatusText(code)

	var (
		nf *scheme.NotFoundError
		ib *scheme.InvalidBaseError
		ve *ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &nf):
		code, detail = http.StatusNotFound, nf.Error()
	case errors.As(err, &ib):
		code, detail = http.StatusBadRequest, ib.Error()
	case errors.As(err, &ve):
		code, detail = http.StatusUnprocessableEntity, ve.Error()
	case errors.As(err, &he):
		code, detail = he.Code, fmt.Sprint(he.Message)
	default:
		c.Logger().Error(err)
	}

	var rerr error
	if c.Request().Method == http.MethodHead {
		rerr = c.NoContent(code)
	} else {
		rerr = c.JSON(code, map[string]string{"detail": detail})
	}
	if rerr != nil {
		c.Logger().Error(rerr)
	}
}
