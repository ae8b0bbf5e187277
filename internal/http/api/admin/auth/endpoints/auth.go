package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/http/api/admin/auth/packets"
	"github.com/nightjar-labs/marquee/internal/http/middleware"
	"github.com/nightjar-labs/marquee/internal/model"
)

type AuthController struct {
	store     db.Store
	jwtSecret string
}

func newAuthController(store db.Store, jwtSecret string) *AuthController {
	return &AuthController{store: store, jwtSecret: jwtSecret}
}

// AuthPublicModule mounts the unauthenticated signup/login endpoints.
func AuthPublicModule(store db.Store, jwtSecret string) api.Module {
	ctl := newAuthController(store, jwtSecret)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/signup", api.ResolveEndpoint(ctl.signup))
		c.POST("/auth/login", api.ResolveEndpoint(ctl.login))
	})
}

// AuthSessionModule mounts the endpoints that need a valid token.
func AuthSessionModule(store db.Store) api.Module {
	ctl := newAuthController(store, "")
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", api.ResolveEndpointWithAuth(ctl.currentProfile))
		c.PUT("/auth/current_profile", api.ResolveEndpointWithAuth(ctl.updateProfile))
	})
}

// POST /api/admin/auth/signup
func (a *AuthController) signup(ctx *gin.Context) (any, *api.Error) {
	var req packets.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := a.store.GetUserByEmail(req.Email); err == nil {
		return nil, &api.Error{Code: http.StatusConflict, Message: "email already registered"}
	} else if err != db.ErrNotFound {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}
	id, err := a.store.CreateUser(req.Email, hashed, req.Name)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	token, err := middleware.GenerateJWT(id, a.jwtSecret)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}
	return packets.TokenResponse{Token: token}, nil
}

// POST /api/admin/auth/login
func (a *AuthController) login(ctx *gin.Context) (any, *api.Error) {
	var req packets.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	user, err := a.store.GetUserByEmail(req.Email)
	if err != nil || !middleware.CheckPassword(user.HashedPassword, req.Password) {
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}
	return packets.TokenResponse{Token: token}, nil
}

// GET /api/admin/auth/current_profile
func (a *AuthController) currentProfile(ctx *gin.Context, user *model.User) (any, *api.Error) {
	return user, nil
}

// PUT /api/admin/auth/current_profile
func (a *AuthController) updateProfile(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := a.store.UpdateUserProfile(user.ID, req.Email, req.Name); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return updated, nil
}
