package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/repository"
)

func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if loginReq.Email == "" || loginReq.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password required")
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	respondOK(c, gin.H{"token": token})
}

// Me returns the caller's identity, including the admin flag the console
// gates its navigation on.
func (h *Handler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	// Only a token for a deleted account is a 401; a transient database
	// error must not sign the whole console out.
	user, err := h.authUsecase.Identity(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusUnauthorized, "Unknown user")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	respondOK(c, user)
}
