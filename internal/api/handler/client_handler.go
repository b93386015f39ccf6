package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
	"github.com/camaleon/crm-api/pkg/urlmask"
)

// ClientHandler handles HTTP requests for client company operations.
type ClientHandler struct {
	service ports.ClientService
	mask    *urlmask.Masker
}

func NewClientHandler(service ports.ClientService, mask *urlmask.Masker) *ClientHandler {
	return &ClientHandler{service: service, mask: mask}
}

type createClientRequest struct {
	Name      string `json:"name"       validate:"required"`
	LegalName string `json:"legal_name"`
	Segment   string `json:"segment"`
	OwnerName string `json:"owner_name"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

type updateClientRequest struct {
	Name      *string `json:"name"`
	LegalName *string `json:"legal_name"`
	Segment   *string `json:"segment"`
	OwnerName *string `json:"owner_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Active    *bool   `json:"active"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LegalName string    `json:"legal_name,omitempty"`
	Segment   string    `json:"segment,omitempty"`
	OwnerName string    `json:"owner_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Links     struct {
		Self     string `json:"self"`
		Contacts string `json:"contacts"`
	} `json:"_links"`
}

type listClientsResponse struct {
	Data []clientResponse `json:"data"`
}

type activityResponse struct {
	ContactID string    `json:"contact_id,omitempty"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

// Create handles POST /v1/clients.
//
// @Summary      Register a client company
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:      req.Name,
		LegalName: req.LegalName,
		Segment:   req.Segment,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.toResponse(client))
}

// Update handles PUT /v1/clients/:id with a partial payload.
//
// @Summary      Update a client company
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id (masked or raw)"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  clientResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.UpdateClient(c.Request().Context(), h.mask.Unmask(c.Param("id")), domain.ClientPatch{
		Name:      req.Name,
		LegalName: req.LegalName,
		Segment:   req.Segment,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponse(client))
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client company
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Client id (masked or raw)"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), h.mask.Unmask(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponse(client))
}

// List handles GET /v1/clients.
//
// @Summary      List client companies
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClientsResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listClientsResponse{Data: make([]clientResponse, 0, len(clients))}
	for _, client := range clients {
		resp.Data = append(resp.Data, h.toResponse(client))
	}
	return c.JSON(http.StatusOK, resp)
}

// Activity handles GET /v1/clients/:id/activity.
//
// @Summary      List a client's recent activity trail
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Client id (masked or raw)"
// @Param        limit  query  int     false  "Max entries (default 50)"
// @Success      200  {array}  activityResponse
// @Router       /v1/clients/{id}/activity [get]
func (h *ClientHandler) Activity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.service.ListActivity(c.Request().Context(), h.mask.Unmask(c.Param("id")), limit)
	if err != nil {
		return err
	}

	resp := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activityResponse{
			ContactID: h.mask.Mask(e.ContactID),
			Action:    e.Action,
			Actor:     e.Actor,
			Detail:    e.Detail,
			At:        e.At,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) toResponse(client *domain.Client) clientResponse {
	maskedID := h.mask.Mask(client.ID)
	resp := clientResponse{
		ID:        maskedID,
		Name:      client.Name,
		LegalName: client.LegalName,
		Segment:   client.Segment,
		OwnerName: client.OwnerName,
		Email:     client.Email,
		Phone:     client.Phone,
		Active:    client.Active,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
	resp.Links.Self = "/v1/clients/" + maskedID
	resp.Links.Contacts = "/v1/clients/" + maskedID + "/contacts"
	return resp
}
