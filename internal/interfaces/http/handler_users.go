package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
	"lovepages-admin/internal/repository"
)

func (h *Handler) ListUsers(c *gin.Context) {
	params := listquery.Parse(c.Request.URL.Query(), repository.UserListSpec)
	users, total, err := h.userRepo.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []entities.User{}
	}
	respondList(c, users, listquery.NewPagination(total, params.Page, params.Limit))
}

// GetUser returns one user together with the pages they own.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	pages, err := h.pageRepo.ListByOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch user pages")
		return
	}
	if pages == nil {
		pages = []entities.Page{}
	}

	respondOK(c, gin.H{"user": user, "pages": pages})
}
