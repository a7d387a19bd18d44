package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const httpStatusCodeInternalError = 600

// Controller handles a request and returns the data of a successful response.
type Controller func(c *gin.Context) (interface{}, error)

// Wrap turns a controller into a gin handler that always answers with a BusinessError
// envelope. Business and validation errors are answered with status 200.
func Wrap(controller Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := controller(c)
		if err == nil {
			c.JSON(http.StatusOK, ErrNil.WithData(result))
			return
		}

		var businessErr *BusinessError
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &businessErr):
			c.JSON(http.StatusOK, businessErr)
		case errors.As(err, &validationErrs):
			c.JSON(http.StatusOK, ErrValidation.WithData(validationErrs.Error()))
		default:
			c.JSON(httpStatusCodeInternalError, ErrInternal.WithData(err.Error()))
		}
	}
}
