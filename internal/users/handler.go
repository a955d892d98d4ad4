package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"notesboard/internal/httpapi"
)

const maxPageSize = 100

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the users API on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /users/{$}", h.CreateUser)
	mux.HandleFunc("GET /users/{$}", h.ListUsers)
	mux.HandleFunc("GET /users/{id}", h.GetUser)
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, map[string]string{"message": "Welcome to the Users Service!"}, http.StatusOK)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, map[string]string{"status": "ok", "service": "users-service"}, http.StatusOK)
}

// CreateUser handles POST /users/
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpapi.Invalid(w, []httpapi.Issue{{Loc: []string{"body"}, Msg: "invalid JSON body"}})
		return
	}

	h.log.Info("creating user", "username", input.Username)
	user, err := h.svc.Create(r.Context(), input)

	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		httpapi.Invalid(w, httpapi.ValidationIssues(err))
		return
	case errors.Is(err, ErrUsernameTaken):
		h.log.Warn("username already exists", "username", input.Username)
		httpapi.Error(w, "Username already exists", http.StatusConflict)
		return
	case errors.Is(err, ErrEmailTaken):
		h.log.Warn("email already exists", "email", input.Email)
		httpapi.Error(w, "Email already exists", http.StatusConflict)
		return
	default:
		h.log.Error("failed to create user", "error", err)
		httpapi.Error(w, "Could not create user.", http.StatusInternalServerError)
		return
	}

	h.log.Info("user created", "id", user.ID, "username", user.Username)
	httpapi.JSON(w, user, http.StatusCreated)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(r)
	if !ok {
		httpapi.Invalid(w, []httpapi.Issue{{Loc: []string{"path", "user_id"}, Msg: "user_id must be a positive integer"}})
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, ErrUserNotFound) {
		h.log.Warn("user not found", "id", id)
		httpapi.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to get user", "id", id, "error", err)
		httpapi.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	httpapi.JSON(w, user, http.StatusOK)
}

// ListUsers handles GET /users/
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, issues := httpapi.ParsePage(r, maxPageSize)
	if len(issues) > 0 {
		httpapi.Invalid(w, issues)
		return
	}

	users, err := h.svc.List(r.Context(), ListQuery{Skip: page.Skip, Limit: page.Limit})
	if err != nil {
		h.log.Error("failed to list users", "error", err)
		httpapi.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("listed users", "count", len(users), "skip", page.Skip, "limit", page.Limit)
	httpapi.JSON(w, users, http.StatusOK)
}
