package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
	"github.com/camaleon/crm-api/internal/infrastructure/export"
	"github.com/camaleon/crm-api/pkg/urlmask"
)

// ContactHandler handles HTTP requests for contact operations.
type ContactHandler struct {
	service ports.ContactService
	clients ports.ClientService
	mask    *urlmask.Masker
}

func NewContactHandler(service ports.ContactService, clients ports.ClientService, mask *urlmask.Masker) *ContactHandler {
	return &ContactHandler{service: service, clients: clients, mask: mask}
}

// Create handles POST /v1/clients/:client_id/contacts.
//
// @Summary      Create a contact, optionally inviting it to the portal
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  path      string              true  "Client id (masked or raw)"
// @Param        body       body      saveContactRequest  true  "Contact details"
// @Success      201        {object}  saveContactResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/clients/{client_id}/contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req saveContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	clientID := h.mask.Unmask(c.Param("client_id"))
	operatorEmail, _ := c.Get("email").(string)

	result, err := h.service.SaveContact(c.Request().Context(), ports.SaveContactInput{
		ClientID:        clientID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		Notes:           req.Notes,
		InviteRequested: req.Invite,
		OperatorEmail:   operatorEmail,
		Password:        req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, h.toSaveResponse(result))
}

// Update handles PUT /v1/contacts/:id.
//
// @Summary      Update a contact, optionally inviting it to the portal
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Contact id (masked or raw)"
// @Param        body  body      saveContactRequest  true  "Contact details"
// @Success      200   {object}  saveContactResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req saveContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	operatorEmail, _ := c.Get("email").(string)

	result, err := h.service.SaveContact(c.Request().Context(), ports.SaveContactInput{
		ContactID:       h.mask.Unmask(c.Param("id")),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		Notes:           req.Notes,
		InviteRequested: req.Invite,
		OperatorEmail:   operatorEmail,
		Password:        req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.toSaveResponse(result))
}

// Delete handles DELETE /v1/contacts/:id.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact id (masked or raw)"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteContact(c.Request().Context(), h.mask.Unmask(c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/clients/:client_id/contacts.
//
// @Summary      List a client's contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  path      string  true  "Client id (masked or raw)"
// @Success      200        {object}  listContactsResponse
// @Router       /v1/clients/{client_id}/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	clientID := h.mask.Unmask(c.Param("client_id"))

	// Portal users only see their own company's contacts.
	role, ownClientID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if role == domain.RoleClient && ownClientID != clientID {
		return domain.ErrForbidden
	}

	contacts, err := h.service.ListContacts(c.Request().Context(), clientID)
	if err != nil {
		return err
	}

	resp := listContactsResponse{Data: make([]contactResponse, 0, len(contacts))}
	for _, contact := range contacts {
		resp.Data = append(resp.Data, h.toContactResponse(contact))
	}
	return c.JSON(http.StatusOK, resp)
}

// Export handles GET /v1/clients/:client_id/contacts/export — streams an xlsx
// workbook of the client's contacts.
//
// @Summary      Export a client's contacts as a spreadsheet
// @Tags         contacts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        client_id  path  string  true  "Client id (masked or raw)"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{client_id}/contacts/export [get]
func (h *ContactHandler) Export(c echo.Context) error {
	clientID := h.mask.Unmask(c.Param("client_id"))

	client, err := h.clients.GetClient(c.Request().Context(), clientID)
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return err
	}

	contacts, err := h.service.ListContacts(c.Request().Context(), clientID)
	if err != nil {
		return err
	}

	name := "contacts"
	if client != nil {
		name = client.Name
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	return export.WriteContactsXLSX(c.Response(), contacts)
}

func (h *ContactHandler) toContactResponse(contact *domain.Contact) contactResponse {
	maskedID := h.mask.Mask(contact.ID)
	maskedClient := h.mask.Mask(contact.ClientID)
	return contactResponse{
		ID:           maskedID,
		ClientID:     maskedClient,
		Name:         contact.Name,
		Email:        contact.Email,
		Phone:        contact.Phone,
		Position:     contact.Position,
		Notes:        contact.Notes,
		PortalAccess: contact.HasPortalAccess(),
		CreatedAt:    contact.CreatedAt,
		UpdatedAt:    contact.UpdatedAt,
		Links: contactLinks{
			Self:   "/v1/contacts/" + maskedID,
			Client: "/v1/clients/" + maskedClient,
		},
	}
}

func (h *ContactHandler) toSaveResponse(result *ports.SaveContactResult) saveContactResponse {
	resp := saveContactResponse{
		Contact:       h.toContactResponse(result.Contact),
		InviteSent:    result.InviteSent,
		AlreadyLinked: result.AlreadyLinked,
		Warnings:      result.Warnings,
	}
	if result.InviteErr != nil {
		resp.InviteError = result.InviteErr.Error()
	}
	return resp
}
