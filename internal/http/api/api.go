package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/http/middleware"
	"github.com/nightjar-labs/marquee/internal/model"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *Error)
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// Controller is the gin group a Module attaches its endpoints to.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, handlers ...gin.HandlerFunc)    { c.Group.GET(path, handlers...) }
func (c *Controller) POST(path string, handlers ...gin.HandlerFunc)   { c.Group.POST(path, handlers...) }
func (c *Controller) PUT(path string, handlers ...gin.HandlerFunc)    { c.Group.PUT(path, handlers...) }
func (c *Controller) PATCH(path string, handlers ...gin.HandlerFunc)  { c.Group.PATCH(path, handlers...) }
func (c *Controller) DELETE(path string, handlers ...gin.HandlerFunc) { c.Group.DELETE(path, handlers...) }

// ResolveEndpointWithAuth adapts a handler that needs the authenticated
// dashboard user.
func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpoint adapts an unauthenticated handler (player pull path).
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
