package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/middleware"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/Dan9191/budget-advisor/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Service is the business logic the handlers call
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, displayName string, thresholds models.Thresholds) (*models.Profile, error)

	SaveBudget(ctx context.Context, userID int64, snapshot models.BudgetSnapshot) (*models.Budget, error)
	CurrentBudget(ctx context.Context, userID int64) (*models.Budget, error)
	Overview(ctx context.Context, userID int64) (models.HealthReport, error)

	Preview(ctx context.Context, userID int64, snapshot *models.BudgetSnapshot, category string, params json.RawMessage) (decision.Result, error)
	AnalyzeDecision(ctx context.Context, userID int64, category string, params json.RawMessage) (*models.DecisionRecord, decision.Result, error)
	ListDecisions(ctx context.Context, userID int64, limit int) ([]models.DecisionRecord, error)
	ExportDecisions(ctx context.Context, userID int64, w io.Writer) error

	Chat(ctx context.Context, userID int64, conversationID *uuid.UUID, message string) (service.ChatReply, error)
	Conversation(ctx context.Context, userID int64, id uuid.UUID) ([]models.Message, error)
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers public routes on r and protected routes behind auth
func (h *Handler) Routes(r *mux.Router, auth mux.MiddlewareFunc) {
	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(auth)
	authRouter.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	authRouter.HandleFunc("/profile", h.UpdateProfile).Methods(http.MethodPut)
	authRouter.HandleFunc("/budgets", h.SaveBudget).Methods(http.MethodPost)
	authRouter.HandleFunc("/budgets/current", h.CurrentBudget).Methods(http.MethodGet)
	authRouter.HandleFunc("/overview", h.Overview).Methods(http.MethodGet)
	authRouter.HandleFunc("/decisions", h.CreateDecision).Methods(http.MethodPost)
	authRouter.HandleFunc("/decisions", h.ListDecisions).Methods(http.MethodGet)
	authRouter.HandleFunc("/decisions/export", h.ExportDecisions).Methods(http.MethodGet)
	authRouter.HandleFunc("/analyze", h.Analyze).Methods(http.MethodPost)
	authRouter.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)
	authRouter.HandleFunc("/chat/{id}", h.Conversation).Methods(http.MethodGet)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to write response: %v", err)
	}
}

// writeError maps service errors to HTTP statuses
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, decision.ErrInputOutOfRange),
		errors.Is(err, decision.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPremiumRequired):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNoBudget), errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAdvisorUnavailable):
		status = http.StatusBadGateway
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
		msg = "internal error"
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	}
	return id, ok
}
