package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rpupo63/portfolio-site/models"
)

func TestNewDatabaseError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
		wantIs     error
	}{
		{"duplicate slug", errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_slug" (SQLSTATE 23505)`), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", errors.New("violates foreign key constraint"), http.StatusBadRequest, ErrBadRequest},
		{"gorm not found", errors.New("record not found"), http.StatusNotFound, ErrNotFound},
		{"connection refused", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"anything else", errors.New("syntax error at or near"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "project", tt.cause)
			if err.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, err.StatusCode)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("expected errors.Is(%v, %v)", err, tt.wantIs)
			}
			if err.Cause != tt.cause {
				t.Errorf("expected cause to be kept")
			}
		})
	}
}

func TestApiErr_GetFullError(t *testing.T) {
	inner := NewBadRequestError("inner")
	outer := NewInternalErrorWithCause("outer", inner)

	want := "outer -> inner"
	if got := outer.GetFullError(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConstructors_MatchSentinels(t *testing.T) {
	if !IsNotFound(NewNotFoundError("project not found")) {
		t.Error("expected not found")
	}
	if !IsUnauthorized(Unauthorized) {
		t.Error("expected unauthorized")
	}
	if !IsConflict(NewConflictError("slug taken")) {
		t.Error("expected conflict")
	}
	if !IsDeliveryError(NewDeliveryError("contact message", errors.New("boom"))) {
		t.Error("expected delivery error")
	}
	if !IsBadRequest(NewBadRequestError("invalid projectID")) {
		t.Error("expected bad request")
	}
	if !IsInternal(NewInternalErrorWithCause("failed to load cv", errors.New("eof"))) {
		t.Error("expected internal")
	}
	if !IsAlreadyExists(NewAlreadyExists(`project with slug "site"`)) {
		t.Error("expected already exists")
	}
	if !IsDatabaseConnectionError(NewDatabaseError("find", "projects", errors.New("dial tcp 10.0.0.1:5432: connection refused"))) {
		t.Error("expected connection error")
	}
	if !IsMalformedPayloadError(NewMalformedPayloadError("project", errors.New("unexpected EOF"))) {
		t.Error("expected malformed payload")
	}
	if !IsRateLimitError(NewRateLimitError(0)) {
		t.Error("expected rate limit")
	}
	if IsInternal(NewNotFoundError("cv not found")) {
		t.Error("not found matched internal")
	}
}

func TestFromValidation(t *testing.T) {
	missing := (&models.Project{}).Validate()
	err := FromValidation(missing)
	if !IsMissingRequiredFieldError(err) {
		t.Fatalf("expected missing field error, got %v", err)
	}
	var apiErr *ApiErr
	if !errors.As(err, &apiErr) || apiErr.Field != "title" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected api error %+v", apiErr)
	}

	invalid := (&models.Project{Title: "x", Description: "y", Slug: "Bad Slug"}).Validate()
	if err := FromValidation(invalid); !IsInvalidFieldError(err) {
		t.Errorf("expected invalid field error, got %v", err)
	}

	plain := errors.New("plain")
	if FromValidation(plain) != plain {
		t.Error("expected non-validation errors to pass through")
	}
}
