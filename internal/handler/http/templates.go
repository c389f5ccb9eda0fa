package handler

import (
	"net/http"
	"slices"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	Bindings map[string]string `json:"bindings"`
}

// ListTemplates godoc
// @Summary List templates
// @Tags Templates
// @Success 200 {array} domain.Template
// @Router /templates [get]
func (h *Handler) listTemplates(c *gin.Context) {
	templates := slices.Collect(h.catalog.Templates.List())
	if templates == nil {
		templates = []domain.Template{}
	}
	c.JSON(http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary Create a template
// @Description Variables are extracted from the header text, body and footer
// @Tags Templates
// @Param template body domain.TemplateFields true "template fields"
// @Success 201 {object} domain.Template
// @Failure 400 {object} errorResponse
// @Router /templates [post]
func (h *Handler) createTemplate(c *gin.Context) {
	var fields domain.TemplateFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		abortBadRequest(c, err)
		return
	}
	tmpl, err := h.catalog.Templates.Create(fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

// GetTemplate godoc
// @Summary Get a template
// @Tags Templates
// @Param id path string true "template id"
// @Success 200 {object} domain.Template
// @Failure 404 {object} errorResponse
// @Router /templates/{id} [get]
func (h *Handler) getTemplate(c *gin.Context) {
	tmpl, err := h.catalog.Templates.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// UpdateTemplate godoc
// @Summary Replace a template's fields
// @Tags Templates
// @Param id path string true "template id"
// @Param template body domain.TemplateFields true "template fields"
// @Success 200 {object} domain.Template
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /templates/{id} [put]
func (h *Handler) updateTemplate(c *gin.Context) {
	var fields domain.TemplateFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		abortBadRequest(c, err)
		return
	}
	tmpl, err := h.catalog.Templates.Update(c.Param("id"), fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// DeleteTemplate godoc
// @Summary Delete a template
// @Description Fails with 409 while a campaign refers to the template
// @Tags Templates
// @Param id path string true "template id"
// @Success 204
// @Failure 409 {object} errorResponse
// @Router /templates/{id} [delete]
func (h *Handler) deleteTemplate(c *gin.Context) {
	if err := h.catalog.DeleteTemplate(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PreviewTemplate godoc
// @Summary Render a template
// @Description Without bindings the sample values are used
// @Tags Templates
// @Param id path string true "template id"
// @Param bindings body previewRequest false "variable bindings"
// @Success 200 {object} service.Preview
// @Failure 404 {object} errorResponse
// @Router /templates/{id}/preview [post]
func (h *Handler) previewTemplate(c *gin.Context) {
	var req previewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}
	}
	preview, err := h.catalog.PreviewTemplate(c.Param("id"), req.Bindings)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}
