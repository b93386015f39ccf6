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

type stubClientService struct {
	getFn func(ctx context.Context, id string) (*domain.Client, error)
}

func (s *stubClientService) CreateClient(_ context.Context, _ ports.CreateClientInput) (*domain.Client, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClientService) UpdateClient(_ context.Context, _ string, _ domain.ClientPatch) (*domain.Client, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, domain.ErrClientNotFound
}

func (s *stubClientService) ListClients(_ context.Context) ([]*domain.Client, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClientService) ListActivity(_ context.Context, _ string, _ int) ([]*domain.ActivityEntry, error) {
	return nil, errors.New("not implemented")
}

func TestContactHandler_Create(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())
	stub := &stubContactService{
		saveFn: func(_ context.Context, in ports.SaveContactInput) (*ports.SaveContactResult, error) {
			if in.ClientID != "client-1" {
				t.Fatalf("client id not unmasked: %q", in.ClientID)
			}
			if in.ContactID != "" {
				t.Fatalf("create must not carry a contact id: %q", in.ContactID)
			}
			if !in.InviteRequested || in.Password != "secret" {
				t.Fatalf("invite block not forwarded: %+v", in)
			}
			return &ports.SaveContactResult{
				Contact: &domain.Contact{
					ID:           "contact-1",
					ClientID:     in.ClientID,
					Name:         in.Name,
					Email:        in.Email,
					LinkedUserID: "user-1",
				},
				Persisted:  true,
				InviteSent: true,
				UserID:     "user-1",
			}, nil
		},
	}
	handler := NewContactHandler(stub, &stubClientService{}, mask)

	e := echo.New()
	e.Validator = NewValidator()
	body := `{"name":"Ana","email":"ana@example.com","invite":true,"password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/clients/:client_id/contacts")
	c.SetParamNames("client_id")
	c.SetParamValues(mask.Mask("client-1"))
	c.Set("email", "operator@agency.test")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp saveContactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.InviteSent {
		t.Error("invite_sent not surfaced")
	}
	if !resp.Contact.PortalAccess {
		t.Error("portal_access should reflect the linked user")
	}
	// Identifiers leave the API masked.
	if resp.Contact.ID == "contact-1" || resp.Contact.ClientID == "client-1" {
		t.Errorf("raw identifiers leaked: %+v", resp.Contact)
	}
	if got := mask.Unmask(resp.Contact.ID); got != "contact-1" {
		t.Errorf("masked id does not round-trip: %q", got)
	}
	if !strings.HasPrefix(resp.Contact.Links.Self, "/v1/contacts/") {
		t.Errorf("unexpected self link: %q", resp.Contact.Links.Self)
	}
}

func TestContactHandler_CreateSurfacesInviteError(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())
	stub := &stubContactService{
		saveFn: func(_ context.Context, in ports.SaveContactInput) (*ports.SaveContactResult, error) {
			return &ports.SaveContactResult{
				Contact:   &domain.Contact{ID: "contact-1", ClientID: "client-1", Name: in.Name},
				Persisted: true,
				InviteErr: domain.ErrWrongCredential,
			}, nil
		},
	}
	handler := NewContactHandler(stub, &stubClientService{}, mask)

	e := echo.New()
	e.Validator = NewValidator()
	body := `{"name":"Ana","email":"ana@example.com","invite":true,"password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/clients/:client_id/contacts")
	c.SetParamNames("client_id")
	c.SetParamValues(mask.Mask("client-1"))

	// The save succeeded even though the invite did not: still a 201.
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp saveContactResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.InviteSent {
		t.Error("invite_sent must be false")
	}
	if resp.InviteError == "" {
		t.Error("invite_error not surfaced")
	}
}

func TestContactHandler_ListScoping(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())

	newListContext := func(clientParam string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/clients/:client_id/contacts")
		c.SetParamNames("client_id")
		c.SetParamValues(clientParam)
		return c, rec
	}

	t.Run("portal user sees own client", func(t *testing.T) {
		stub := &stubContactService{
			listFn: func(_ context.Context, clientID string) ([]*domain.Contact, error) {
				if clientID != "client-1" {
					t.Fatalf("unexpected client filter: %q", clientID)
				}
				return []*domain.Contact{{ID: "contact-1", ClientID: clientID, Name: "Ana"}}, nil
			},
		}
		handler := NewContactHandler(stub, &stubClientService{}, mask)

		c, rec := newListContext(mask.Mask("client-1"))
		c.Set("role", domain.RoleClient)
		c.Set("client_id", "client-1")

		if err := handler.List(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp listContactsResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if len(resp.Data) != 1 || resp.Data[0].Name != "Ana" {
			t.Fatalf("unexpected payload: %+v", resp)
		}
	})

	t.Run("portal user blocked from another client", func(t *testing.T) {
		stub := &stubContactService{
			listFn: func(_ context.Context, _ string) ([]*domain.Contact, error) {
				t.Fatal("service must not be reached")
				return nil, nil
			},
		}
		handler := NewContactHandler(stub, &stubClientService{}, mask)

		c, _ := newListContext(mask.Mask("client-2"))
		c.Set("role", domain.RoleClient)
		c.Set("client_id", "client-1")

		if err := handler.List(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin sees any client", func(t *testing.T) {
		stub := &stubContactService{
			listFn: func(_ context.Context, _ string) ([]*domain.Contact, error) {
				return nil, nil
			},
		}
		handler := NewContactHandler(stub, &stubClientService{}, mask)

		c, rec := newListContext(mask.Mask("client-2"))
		c.Set("role", domain.RoleAdmin)

		if err := handler.List(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestContactHandler_Delete(t *testing.T) {
	mask := urlmask.New(zerolog.Nop())
	deleted := ""
	stub := &stubContactService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewContactHandler(stub, &stubClientService{}, mask)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/contacts/:id")
	c.SetParamNames("id")
	c.SetParamValues(mask.Mask("contact-1"))

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "contact-1" {
		t.Fatalf("id not unmasked before delete: %q", deleted)
	}
}
