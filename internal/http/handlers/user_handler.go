// User account HTTP handlers.
//
//   - POST /user         (create-if-absent with the default credit balance)
//   - GET  /user?email=  (profile with remaining credits)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

// RegisterUserRequest is the JSON payload for account registration.
type RegisterUserRequest struct {
	Email string `json:"email" binding:"required,email" example:"dev@example.com"`
	Name  string `json:"name" example:"Dev"`
}

// RegisterUser godoc
// @ID          registerUser
// @Summary     Register (or fetch) a user account
// @Description Creates the account with the default credit balance when it
// @Description does not exist; an existing account is returned unchanged.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterUserRequest  true  "Account payload"
// @Success     200  {object}  domain.UserAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user [post]
func (h *Handlers) RegisterUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a valid email is required")
		return
	}

	u, err := h.userSvc.Register(ctx, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrMissingEmail) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, u)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user profile with the remaining credit balance
// @Tags        Users
// @Produce     json
// @Param       email  query  string  true  "Account email"
// @Success     200  {object}  domain.UserAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Email is required"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user [get]
func (h *Handlers) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return
	}

	u, err := h.userSvc.Profile(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, u)
}
