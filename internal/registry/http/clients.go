package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/internal/registry/service"
	"github.com/harborauth/clientreg/pkg/httpx"
	"github.com/harborauth/clientreg/pkg/regsdk"
	"github.com/harborauth/clientreg/pkg/slogx"
)

// ClientsHandler handles the per-user client registration endpoints.
type ClientsHandler struct {
	Registration *service.RegistrationService
}

// HandleList handles GET /v1/users/{id}/clients
//
//	@Summary		List OAuth2 Client Registrations
//	@Description	Returns all OAuth2 clients registered for the user. Callers may list their own clients; the admin privilege is required for anyone else's.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token"
//	@Param			id				path		string						true	"Target user id"
//	@Success		200				{object}	regsdk.ListClientsResponse	"List of client registrations"
//	@Failure		401				{object}	regsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	regsdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	regsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	regsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users/{id}/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principalID := httpx.UserIDFromContext(ctx)
	targetUserID := r.PathValue("id")

	clients, err := h.Registration.ListClients(ctx, principalID, targetUserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list clients")
		return
	}

	response := regsdk.ListClientsResponse{
		Clients: make([]regsdk.ClientInfo, len(clients)),
	}
	for i, client := range clients {
		response.Clients[i] = clientInfo(client)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleCreate handles POST /v1/users/{id}/clients
//
//	@Summary		Register OAuth2 Client
//	@Description	Registers a new OAuth2 client for the user and returns the generated client secret exactly once.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token"
//	@Param			id				path		string							true	"Target user id"
//	@Param			request			body		regsdk.CreateClientRequest		true	"Client registration request"
//	@Success		201				{object}	regsdk.CreateClientResponse		"client and one-time client_secret"
//	@Failure		400				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		401				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		403				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		404				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		409				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		422				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Failure		500				{object}	regsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/{id}/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req regsdk.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, regsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	principalID := httpx.UserIDFromContext(ctx)
	targetUserID := r.PathValue("id")

	created, secret, err := h.Registration.CreateClient(ctx, principalID, targetUserID, service.CreateClientInput{
		ClientID:          req.ClientID,
		AllowedGrantTypes: req.AllowedGrantTypes,
		RedirectURIs:      req.RedirectURIs,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create client")
		return
	}

	// The secret appears in this response and nowhere else.
	httpx.WriteJSON(w, http.StatusCreated, regsdk.CreateClientResponse{
		Client:       clientInfo(created),
		ClientSecret: secret,
	})
}

func clientInfo(c domain.Client) regsdk.ClientInfo {
	redirectURIs := c.RedirectURIs
	if redirectURIs == nil {
		redirectURIs = []string{}
	}

	return regsdk.ClientInfo{
		ID:                c.ID,
		ClientID:          c.ClientID,
		UserID:            c.UserID,
		AllowedGrantTypes: domain.GrantTypeStrings(c.AllowedGrantTypes),
		RedirectURIs:      redirectURIs,
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
}

// writeServiceError maps registration service failures onto the wire.
// Order matters for nothing here; every branch is terminal.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, regsdk.ErrorResponse{
			Error:            "user_not_found",
			ErrorDescription: "User not found",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, regsdk.ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: err.Error(),
		})
	case errors.As(err, &validationErr):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, regsdk.ErrorResponse{
			Error:            "invalid_client_metadata",
			ErrorDescription: validationErr.Error(),
		})
	case errors.Is(err, service.ErrClientIDTaken):
		httpx.WriteJSON(w, http.StatusConflict, regsdk.ErrorResponse{
			Error:            "client_exists",
			ErrorDescription: "A client with this clientId already exists",
		})
	default:
		slogx.FromContext(r.Context()).Error(logMsg, "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, regsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Internal server error",
		})
	}
}
