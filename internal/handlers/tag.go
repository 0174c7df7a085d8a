package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/services"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags returns the user's tags; q narrows them for autocompletion
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(userID, c.Query("q"))
	if err != nil {
		respondTagError(c, err)
		return
	}

	respond(c, http.StatusOK, "Tags fetched successfully", tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Tag string `json:"tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	tag, err := h.tagService.CreateTag(userID, req.Tag)
	if err != nil {
		respondTagError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Tag created successfully", tag)
}

// SuggestTags proposes tags for a draft todo
func (h *TagHandler) SuggestTags(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	suggestions, err := h.tagService.SuggestTags(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		respondTagError(c, err)
		return
	}

	respond(c, http.StatusOK, "Tag suggestions generated", gin.H{"tags": suggestions})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "id", "tag ID")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(userID, tagID); err != nil {
		respondTagError(c, err)
		return
	}

	respond(c, http.StatusOK, "Tag deleted successfully", gin.H{"id": tagID})
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagRequired), errors.Is(err, services.ErrNothingToTag):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTagTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Tag must be at most %d characters", constants.MaxTagLength))
	case errors.Is(err, services.ErrTagExists):
		apierrors.Conflict(c, "Tag already exists")
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, "Tag not found")
	default:
		apierrors.InternalError(c, "", err)
	}
}
