package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/satriadivo/goshop/pkg/apperror"
	"github.com/satriadivo/goshop/pkg/response"
)

// renderError maps a service error onto the API envelope using the
// apperror kind for the status code.
func renderError(c *gin.Context, err error) {
	ae := apperror.As(err)
	response.Error[any](c, ae.Status(), ae.Message, gin.H{"kind": ae.Kind.String()})
}
