package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/xup/internal/adapters/http/dto"
	"github.com/jsamuelsen/xup/internal/app"
)

// ErrorResponder writes err to the response using the API error envelope.
type ErrorResponder func(c *gin.Context, err error)

// DoctrineHandler handles the doctrine read API.
type DoctrineHandler struct {
	service *app.DoctrineService
	respond ErrorResponder
}

// NewDoctrineHandler creates a new doctrine handler.
func NewDoctrineHandler(service *app.DoctrineService, respond ErrorResponder) *DoctrineHandler {
	return &DoctrineHandler{
		service: service,
		respond: respond,
	}
}

// ListNames handles GET /api/v1/doctrines
//
// @Summary List doctrine names
// @Tags doctrines
// @Produce json
// @Success 200 {object} dto.NamesResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/doctrines [get]
func (h *DoctrineHandler) ListNames(c *gin.Context) {
	names, err := h.service.Names(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NamesResponse{Names: names})
}

// GetDoctrine handles GET /api/v1/doctrines/:name
//
// @Summary Get a doctrine
// @Tags doctrines
// @Produce json
// @Param name path string true "Doctrine name"
// @Success 200 {object} dto.DoctrineResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/doctrines/{name} [get]
func (h *DoctrineHandler) GetDoctrine(c *gin.Context) {
	var uri dto.DoctrineURI
	if !h.bind(c, &uri) {
		return
	}

	doctrine, err := h.service.Get(c.Request.Context(), uri.Name)
	if err != nil {
		h.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDoctrineResponse(doctrine))
}

// GetXUp handles GET /api/v1/doctrines/:name/xup
//
// @Summary Get the x-up line of a doctrine
// @Tags doctrines
// @Produce json
// @Param name path string true "Doctrine name"
// @Success 200 {object} dto.XUpResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/doctrines/{name}/xup [get]
func (h *DoctrineHandler) GetXUp(c *gin.Context) {
	var uri dto.DoctrineURI
	if !h.bind(c, &uri) {
		return
	}

	line, err := h.service.XUp(c.Request.Context(), uri.Name)
	if err != nil {
		h.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.XUpResponse{Name: uri.Name, XUp: line})
}

// RegisterRoutes registers the doctrine routes on the given group.
func (h *DoctrineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctrines", h.ListNames)
	rg.GET("/doctrines/:name", h.GetDoctrine)
	rg.GET("/doctrines/:name/xup", h.GetXUp)
}

// bind reports whether the path parameters are acceptable. A rejected name
// goes out through the error responder like any other validation failure.
func (h *DoctrineHandler) bind(c *gin.Context, uri *dto.DoctrineURI) bool {
	if err := dto.BindURIAndValidate(c, uri); err != nil {
		h.respond(c, dto.RequestError(err))
		return false
	}

	return true
}
