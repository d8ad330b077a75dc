package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	tagRepo   TagStore
}

func newTagHandler(tagRepo TagStore) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()
	return tagHandler{
		responder: NewResponder(logger),
		tagRepo:   tagRepo,
	}
}

// getTags lists the tags and categories in use
// @Summary Get tags
// @Description Distinct project tags, blog tags (published posts only unless the site owner asks) and project categories
// @Tags Tags
// @Produce json
// @Success 200 {object} TagsResponse
// @Router /tags [get]
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		projectTags, err := h.tagRepo.ProjectTags(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project tags", "projects", err))
			return
		}
		blogTags, err := h.tagRepo.BlogTags(ctx, !ctxIsAdmin(ctx))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog tags", "blog_posts", err))
			return
		}
		categories, err := h.tagRepo.Categories(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "projects", err))
			return
		}

		h.responder.WriteJSON(w, TagsResponse{
			ProjectTags: nonNil(projectTags),
			BlogTags:    nonNil(blogTags),
			Categories:  nonNil(categories),
		})
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
