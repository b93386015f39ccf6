package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
	"github.com/camaleon/crm-api/pkg/urlmask"
)

type stubContactService struct {
	saveFn   func(ctx context.Context, in ports.SaveContactInput) (*ports.SaveContactResult, error)
	inviteFn func(ctx context.Context, in ports.InviteContactInput) (*ports.SaveContactResult, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, clientID string) ([]*domain.Contact, error)
}

func (s *stubContactService) SaveContact(ctx context.Context, in ports.SaveContactInput) (*ports.SaveContactResult, error) {
	return s.saveFn(ctx, in)
}

func (s *stubContactService) InviteContact(ctx context.Context, in ports.InviteContactInput) (*ports.SaveContactResult, error) {
	return s.inviteFn(ctx, in)
}

func (s *stubContactService) DeleteContact(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubContactService) ListContacts(ctx context.Context, clientID string) ([]*domain.Contact, error) {
	return s.listFn(ctx, clientID)
}

func newInviteContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/invites", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "operator@agency.test")
	return c, rec
}

func TestInviteHandler_Success(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())
	stub := &stubContactService{
		inviteFn: func(_ context.Context, in ports.InviteContactInput) (*ports.SaveContactResult, error) {
			if in.ContactID != "contact-1" || in.ClientID != "client-1" {
				t.Fatalf("identifiers not unmasked: %+v", in)
			}
			if in.OperatorEmail != "operator@agency.test" {
				t.Fatalf("operator email not taken from claims: %q", in.OperatorEmail)
			}
			return &ports.SaveContactResult{
				Contact:    &domain.Contact{ID: in.ContactID, ClientID: "client-1"},
				InviteSent: true,
				UserID:     "user-1",
			}, nil
		},
	}
	handler := NewInviteHandler(stub, mask)

	body := `{"email":"ana@example.com","contact_id":"` + mask.Mask("contact-1") +
		`","client_id":"` + mask.Mask("client-1") + `","password":"secret"}`
	c, rec := newInviteContext(t, body)

	if err := handler.Invite(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["user_id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["message"] != "invitation sent" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestInviteHandler_AlreadyLinked(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())
	stub := &stubContactService{
		inviteFn: func(_ context.Context, _ ports.InviteContactInput) (*ports.SaveContactResult, error) {
			return &ports.SaveContactResult{
				Contact:       &domain.Contact{ID: "contact-1", LinkedUserID: "user-9"},
				AlreadyLinked: true,
				UserID:        "user-9",
			}, nil
		},
	}
	handler := NewInviteHandler(stub, mask)

	body := `{"email":"ana@example.com","contact_id":"x","client_id":"y","password":"secret"}`
	c, rec := newInviteContext(t, body)

	if err := handler.Invite(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != true || resp["user_id"] != "user-9" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if msg, _ := resp["message"].(string); !strings.Contains(msg, "already has portal access") {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestInviteHandler_WrongCredentialPropagates(t *testing.T) {
	stub := &stubContactService{
		inviteFn: func(_ context.Context, _ ports.InviteContactInput) (*ports.SaveContactResult, error) {
			return nil, domain.ErrWrongCredential
		},
	}
	handler := NewInviteHandler(stub, urlmask.New(zerolog.Nop()))

	body := `{"email":"ana@example.com","contact_id":"x","client_id":"y","password":"wrong"}`
	c, _ := newInviteContext(t, body)

	// The central error handler maps this to 403; the handler only forwards it.
	if err := handler.Invite(c); !errors.Is(err, domain.ErrWrongCredential) {
		t.Fatalf("expected ErrWrongCredential, got %v", err)
	}
}

func TestInviteHandler_ValidationFailure(t *testing.T) {
	stub := &stubContactService{
		inviteFn: func(_ context.Context, _ ports.InviteContactInput) (*ports.SaveContactResult, error) {
			t.Fatal("service must not be reached on invalid input")
			return nil, nil
		},
	}
	handler := NewInviteHandler(stub, urlmask.New(zerolog.Nop()))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"email":"ana@example.com","contact_id":"x","client_id":"y"}`},
		{name: "missing contact", body: `{"email":"ana@example.com","client_id":"y","password":"p"}`},
		{name: "malformed email", body: `{"email":"nope","contact_id":"x","client_id":"y","password":"p"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newInviteContext(t, tc.body)
			err := handler.Invite(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestInviteHandler_BadPayload(t *testing.T) {
	stub := &stubContactService{}
	handler := NewInviteHandler(stub, urlmask.New(zerolog.Nop()))

	c, _ := newInviteContext(t, `{not json`)
	err := handler.Invite(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
