package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camaleon/crm-api/internal/core/ports"
	"github.com/camaleon/crm-api/pkg/urlmask"
)

// InviteHandler exposes the remote invitation endpoint consumed by both apps.
type InviteHandler struct {
	service ports.ContactService
	mask    *urlmask.Masker
}

func NewInviteHandler(service ports.ContactService, mask *urlmask.Masker) *InviteHandler {
	return &InviteHandler{service: service, mask: mask}
}

type inviteRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	ContactID string `json:"contact_id" validate:"required"`
	ClientID  string `json:"client_id"  validate:"required"`
	Password  string `json:"password"   validate:"required"`
}

type inviteResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// Invite handles POST /v1/invites — runs the invitation chain for an
// existing contact. Wrong operator credential maps to 403, every other
// failure to 500, matching what the calling apps expect.
//
// @Summary      Invite a client contact to the portal
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      inviteRequest  true  "Invitation request"
// @Success      200   {object}  inviteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/invites [post]
func (h *InviteHandler) Invite(c echo.Context) error {
	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	operatorEmail, _ := c.Get("email").(string)

	result, err := h.service.InviteContact(c.Request().Context(), ports.InviteContactInput{
		ContactID:     h.mask.Unmask(req.ContactID),
		ClientID:      h.mask.Unmask(req.ClientID),
		Email:         req.Email,
		OperatorEmail: operatorEmail,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}

	if result.AlreadyLinked {
		return c.JSON(http.StatusOK, inviteResponse{
			Success: true,
			UserID:  result.UserID,
			Message: "contact already has portal access",
		})
	}

	msg := "invitation sent"
	if len(result.Warnings) > 0 {
		msg = msg + "; " + result.Warnings[0]
	}
	return c.JSON(http.StatusOK, inviteResponse{
		Success: true,
		UserID:  result.UserID,
		Message: msg,
	})
}
