package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// RewriteStatusResponse reports whether a rewrite backend is configured
// @Description Rewrite backend availability
type RewriteStatusResponse struct {
	Available bool   `json:"available"`
	Model     string `json:"model,omitempty" example:"gpt-4o-mini"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and queue connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing service is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "task queue unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "account disabled")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email and password are required")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogoutAll godoc
// @Summary      Logout everywhere
// @Description  Invalidate all sessions of the current user
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/logout-all [post]
func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.authService.LogoutAll(r.Context(), authCtx.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChangePassword godoc
// @Summary      Change password
// @Description  Change the current user's password. All sessions are invalidated.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Wrong current password"
// @Router       /auth/password [put]
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.authService.ChangePassword(r.Context(), authCtx.UserID, req); err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "current password is incorrect")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Setup endpoint (no auth required, one-time use)

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the initial admin user. This endpoint can only be called once when no users exist.
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      driving.SetupRequest  true  "Admin user details"
// @Success      201      {object}  driving.SetupResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Failure      500      {object}  ErrorResponse  "Setup failed"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req driving.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.userService.Setup(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case domain.ErrForbidden:
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleListUsers godoc
// @Summary      List all users
// @Description  Get a list of all users (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]*domain.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.ToSummary()
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleCreateUser godoc
// @Summary      Create user
// @Description  Create a new user (admin only)
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.CreateUserRequest  true  "User details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      409      {object}  ErrorResponse  "User already exists"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req driving.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrAlreadyExists:
			writeError(w, http.StatusConflict, "user already exists")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user.ToSummary())
}

// handleGetUser godoc
// @Summary      Get user
// @Description  Get a user by ID (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [get]
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	user, err := s.userService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleUpdateUser godoc
// @Summary      Update user
// @Description  Update a user's name, role or active flag (admin only)
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "User ID"
// @Param        request  body      driving.UpdateUserRequest  true  "Fields to update"
// @Success      200      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404      {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [put]
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var req driving.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Update(r.Context(), id, req)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Description  Delete a user by ID (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Missing user ID"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// setPasswordRequest carries an admin password reset
type setPasswordRequest struct {
	Password string `json:"password"`
}

// handleSetUserPassword godoc
// @Summary      Set user password
// @Description  Reset a user's password (admin only). All of the user's sessions are invalidated.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "User ID"
// @Param        request  body      setPasswordRequest  true  "New password"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404      {object}  ErrorResponse  "User not found"
// @Router       /users/{id}/password [put]
func (s *Server) handleSetUserPassword(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userService.SetPassword(r.Context(), id, req.Password); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "password is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to set password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Analysis endpoints

// handleAnalyze godoc
// @Summary      Analyze a document
// @Description  Run the grading pass over a newsletter draft. Returns the annotated text, issue spans and, when formatted content is supplied, highlight spans.
// @Tags         Analyses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.AnalyzeRequest  true  "Document to analyze"
// @Success      200      {object}  domain.Analysis
// @Failure      400      {object}  ErrorResponse  "Invalid request or empty text"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Analysis failed"
// @Router       /analyses [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.analysisService.Analyze(r.Context(), authCtx, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "plain_text is required")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// handleListAnalyses godoc
// @Summary      List analyses
// @Description  List the current user's recent analyses, newest first
// @Tags         Analyses
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of analyses to return"
// @Success      200    {array}   domain.Analysis
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      500    {object}  ErrorResponse  "Internal server error"
// @Router       /analyses [get]
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	analyses, err := s.analysisService.List(r.Context(), authCtx, limit)
	if err != nil {
		switch err {
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			writeError(w, http.StatusInternalServerError, "failed to list analyses")
		}
		return
	}

	writeJSON(w, http.StatusOK, analyses)
}

// handleGetAnalysis godoc
// @Summary      Get analysis
// @Description  Get a stored analysis by ID
// @Tags         Analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis ID"
// @Success      200  {object}  domain.Analysis
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse  "Analysis not found"
// @Router       /analyses/{id} [get]
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing analysis id")
		return
	}

	analysis, err := s.analysisService.Get(r.Context(), authCtx, id)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// handleDeleteAnalysis godoc
// @Summary      Delete analysis
// @Description  Delete a stored analysis by ID
// @Tags         Analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse  "Analysis not found"
// @Router       /analyses/{id} [delete]
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing analysis id")
		return
	}

	if err := s.analysisService.Delete(r.Context(), authCtx, id); err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Draft endpoints

// handleRequestDraft godoc
// @Summary      Request a rewrite draft
// @Description  Create a pending rewrite draft for an analysis. The rewrite itself runs in a background worker; poll the draft until its status is completed or failed.
// @Tags         Drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.RewriteDraftRequest  true  "Analysis to rewrite"
// @Success      202      {object}  domain.Draft
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Not the owner"
// @Failure      404      {object}  ErrorResponse  "Analysis not found"
// @Failure      503      {object}  ErrorResponse  "No rewrite backend configured"
// @Router       /drafts [post]
func (s *Server) handleRequestDraft(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.RewriteDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := s.draftService.Request(r.Context(), authCtx, req)
	if err != nil {
		switch err {
		case domain.ErrRewriteNotConfigured:
			writeError(w, http.StatusServiceUnavailable, "no rewrite backend configured")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "analysis_id is required")
		default:
			writeAnalysisError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusAccepted, draft)
}

// handleGetDraft godoc
// @Summary      Get draft
// @Description  Get a rewrite draft by ID
// @Tags         Drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  domain.Draft
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse  "Draft not found"
// @Router       /drafts/{id} [get]
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing draft id")
		return
	}

	draft, err := s.draftService.Get(r.Context(), authCtx, id)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// handleGetDraftByAnalysis godoc
// @Summary      Get latest draft for an analysis
// @Description  Get the most recent rewrite draft created for an analysis
// @Tags         Drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis ID"
// @Success      200  {object}  domain.Draft
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse  "No draft for this analysis"
// @Router       /analyses/{id}/draft [get]
func (s *Server) handleGetDraftByAnalysis(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing analysis id")
		return
	}

	draft, err := s.draftService.GetByAnalysis(r.Context(), authCtx, id)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// handleScoreAnalysis godoc
// @Summary      Score an analysis
// @Description  Ask the rewrite backend for a holistic grade of the analysed document. Synchronous.
// @Tags         Drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis ID"
// @Success      200  {object}  domain.HolisticScore
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse  "Analysis not found"
// @Failure      502  {object}  ErrorResponse  "Rewrite backend failed"
// @Failure      503  {object}  ErrorResponse  "No rewrite backend configured"
// @Router       /analyses/{id}/score [post]
func (s *Server) handleScoreAnalysis(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing analysis id")
		return
	}

	score, err := s.draftService.Score(r.Context(), authCtx, id)
	if err != nil {
		switch err {
		case domain.ErrRewriteNotConfigured:
			writeError(w, http.StatusServiceUnavailable, "no rewrite backend configured")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case domain.ErrForbidden:
			writeError(w, http.StatusForbidden, "forbidden")
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "analysis not found")
		default:
			writeError(w, http.StatusBadGateway, "scoring failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, score)
}

// Settings endpoints

// handleGetRewriteSettings godoc
// @Summary      Get rewrite settings
// @Description  Get the rewrite backend configuration with the API key redacted (admin only)
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.RewriteSettings
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "Not configured yet"
// @Router       /settings/rewrite [get]
func (s *Server) handleGetRewriteSettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	settings, err := s.settingsService.GetRewriteSettings(r.Context(), authCtx)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "rewrite settings not configured")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case domain.ErrForbidden:
			writeError(w, http.StatusForbidden, "admin access required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateRewriteSettings godoc
// @Summary      Update rewrite settings
// @Description  Configure the rewrite backend (admin only). The new backend is pinged before it is installed; on failure the previous backend is kept.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateRewriteSettingsRequest  true  "New settings"
// @Success      200      {object}  domain.RewriteSettings
// @Failure      400      {object}  ErrorResponse  "Invalid input or unknown provider"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      502      {object}  ErrorResponse  "Backend validation failed"
// @Router       /settings/rewrite [put]
func (s *Server) handleUpdateRewriteSettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.UpdateRewriteSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.settingsService.UpdateRewriteSettings(r.Context(), authCtx, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidProvider:
			writeError(w, http.StatusBadRequest, "unknown provider")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case domain.ErrForbidden:
			writeError(w, http.StatusForbidden, "admin access required")
		default:
			writeError(w, http.StatusBadGateway, "backend validation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleGetRewriteStatus godoc
// @Summary      Get rewrite backend status
// @Description  Report whether a rewrite backend is currently available
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RewriteStatusResponse
// @Router       /settings/rewrite/status [get]
func (s *Server) handleGetRewriteStatus(w http.ResponseWriter, r *http.Request) {
	resp := RewriteStatusResponse{}
	if s.services != nil {
		if svc := s.services.RewriteService(); svc != nil {
			resp.Available = true
			resp.Model = svc.Model()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAnalysisError maps the common ownership error set shared by the
// analysis and draft endpoints
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrNotFound:
		writeError(w, http.StatusNotFound, "not found")
	case domain.ErrUnauthorized:
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
