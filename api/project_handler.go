package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo ProjectStore
	maxBodySize int64
}

func newProjectHandler(projectRepo ProjectStore, maxBodySize int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		maxBodySize: maxBodySize,
	}
}

// getAllProjects retrieves projects, featured first
// @Summary Get all projects
// @Description Retrieves projects, optionally filtered by featured flag, category, type or tag
// @Tags Projects
// @Produce json
// @Param featured query bool false "Only featured (true) or non-featured (false) projects"
// @Param category query string false "Category"
// @Param type query string false "Project type"
// @Param tag query string false "Tag"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid query parameter"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := boolQuery(r, "featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, offset, err := pagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		filter := database.ProjectFilter{
			Featured: featured,
			Category: query.Get("category"),
			Type:     query.Get("type"),
			Tag:      query.Get("tag"),
			Limit:    limit,
			Offset:   offset,
		}
		projects, err := h.projectRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}
		total, err := h.projectRepo.Count(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    total,
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getProjectBySlug retrieves a specific project by slug
// @Summary Get project by slug
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} models.Project "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/slug/{slug} [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !models.ValidSlug(slug) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		project, err := h.projectRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project. The slug is derived from the title when omitted.
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeJSON(w, r, h.maxBodySize, "project", &project); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project.ID = uuid.Nil
		if project.Slug == "" {
			project.Slug = models.Slugify(project.Title)
		}
		now := time.Now().UTC()
		project.CreatedAt, project.UpdatedAt = now, now

		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, errs.FromValidation(err))
			return
		}

		if err := h.ensureSlugFree(r, project.Slug, uuid.Nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ID.String()).Str("slug", project.Slug).Msg("Created project")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces an existing project. created_at is kept.
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existingProject, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var project models.Project
		if err := decodeJSON(w, r, h.maxBodySize, "project", &project); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project.ID = projectID
		if project.Slug == "" {
			project.Slug = existingProject.Slug
		}
		project.CreatedAt = existingProject.CreatedAt
		project.UpdatedAt = time.Now().UTC()
		if project.UpdatedAt.Before(project.CreatedAt) {
			project.UpdatedAt = project.CreatedAt
		}

		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, errs.FromValidation(err))
			return
		}

		if project.Slug != existingProject.Slug {
			if err := h.ensureSlugFree(r, project.Slug, projectID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if err := h.projectRepo.Update(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} StatusResponse "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existingProject, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}

// ensureSlugFree returns a conflict when another project already has slug.
// The unique index still guards against races.
func (h projectHandler) ensureSlugFree(r *http.Request, slug string, self uuid.UUID) error {
	other, err := h.projectRepo.FindBySlug(r.Context(), slug)
	if err != nil {
		return wrapDatabaseError("find project", "project", err)
	}
	if other != nil && other.ID != self {
		conflict := errs.NewAlreadyExists(fmt.Sprintf("project with slug %q", slug))
		conflict.Field = "slug"
		return conflict
	}
	return nil
}
