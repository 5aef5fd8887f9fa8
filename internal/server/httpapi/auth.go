package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(malformedBodyMessage, ""))
		return
	}

	u, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{Message: "User created successfully", User: newUserView(u)})
}

func (h *Handler) Signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(malformedBodyMessage, ""))
		return
	}

	res, err := h.auth.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.metrics.AuthFailure("bad_credentials")
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SigninResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: newUserView(res.User)})
}

func (h *Handler) Profile(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	u, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, notFound("User", err))
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: newUserView(u)})
}
