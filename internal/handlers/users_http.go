package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/service"
)

type UsersHTTP struct {
	S service.UserService
}

func NewUsersHTTP(s service.UserService) *UsersHTTP { return &UsersHTTP{S: s} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHTTP) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	u, err := h.S.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (h *UsersHTTP) List(c *gin.Context) {
	users, err := h.S.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	c.JSON(http.StatusOK, out)
}

func (h *UsersHTTP) Get(c *gin.Context) {
	id, ok := idParam(c, "id", "user")
	if !ok {
		return
	}
	u, err := h.S.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (h *UsersHTTP) Create(c *gin.Context) {
	var p model.UserPatch
	if !bindStrict(c, &p) {
		return
	}
	u, err := h.S.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (h *UsersHTTP) Update(c *gin.Context) {
	id, ok := idParam(c, "id", "user")
	if !ok {
		return
	}
	var p model.UserPatch
	if !bindStrict(c, &p) {
		return
	}
	u, err := h.S.Update(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (h *UsersHTTP) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "user")
	if !ok {
		return
	}
	if err := h.S.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "user deleted")
}
