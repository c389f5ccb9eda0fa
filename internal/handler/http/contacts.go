package handler

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

const maxImportSize = 10 << 20

// ListContacts godoc
// @Summary List contacts
// @Description Optional case-insensitive search over name and phone number
// @Tags Contacts
// @Param q query string false "search term"
// @Success 200 {array} domain.Contact
// @Router /contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	contacts := slices.Collect(h.catalog.Contacts.Search(c.Query("q")))
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

// ClearContacts godoc
// @Summary Remove every contact
// @Tags Contacts
// @Success 204
// @Router /contacts [delete]
func (h *Handler) clearContacts(c *gin.Context) {
	if err := h.catalog.Contacts.Clear(); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportContacts godoc
// @Summary Import contacts
// @Description Accepts tabular text either as the raw body or as a multipart "file" field
// @Tags Contacts
// @Accept plain
// @Accept mpfd
// @Success 201 {array} domain.Contact
// @Failure 400 {object} errorResponse
// @Router /contacts/import [post]
func (h *Handler) importContacts(c *gin.Context) {
	raw, err := readImport(c)
	if err != nil {
		abortBadRequest(c, err)
		return
	}
	contacts, err := h.catalog.ImportContacts(raw)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	c.JSON(http.StatusCreated, contacts)
}

func readImport(c *gin.Context) (string, error) {
	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", err
		}
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		src = f
	}
	data, err := io.ReadAll(io.LimitReader(src, maxImportSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxImportSize {
		return "", errors.New("import exceeds size limit")
	}
	return string(data), nil
}

// ExportContacts godoc
// @Summary Export contacts
// @Description Downloads every contact as comma separated text
// @Tags Contacts
// @Produce plain
// @Success 200 {string} string
// @Failure 400 {object} errorResponse
// @Router /contacts/export [get]
func (h *Handler) exportContacts(c *gin.Context) {
	out, err := h.catalog.ExportContacts()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}
