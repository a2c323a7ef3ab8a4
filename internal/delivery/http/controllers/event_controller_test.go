package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsite/internal/delivery/http/helpers"
	"eventsite/internal/delivery/http/middleware"
	"eventsite/internal/domain"
	"eventsite/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createResult  *domain.Event
	createVerrs   validation.Errors
	createErr     error
	lastCreateIn  domain.EventInput
	lastCreatorID int64

	updateResult *domain.Event
	updateVerrs  validation.Errors
	updateErr    error
	lastUpdateID int64

	deleteErr    error
	lastDeleteID int64

	getBySlugResult *domain.Event
	getBySlugErr    error
	lastSlug        string

	listResult []*domain.Event
	listErr    error

	listPageResult []*domain.Event
	listPageTotal  int64
	listPageErr    error
	lastListParams domain.PaginationParams
}

func (f *fakeEventService) Create(ctx context.Context, input domain.EventInput, creatorID int64) (*domain.Event, validation.Errors, error) {
	f.lastCreateIn = input
	f.lastCreatorID = creatorID
	return f.createResult, f.createVerrs, f.createErr
}

func (f *fakeEventService) Update(ctx context.Context, id int64, input domain.EventInput) (*domain.Event, validation.Errors, error) {
	f.lastUpdateID = id
	return f.updateResult, f.updateVerrs, f.updateErr
}

func (f *fakeEventService) Delete(ctx context.Context, id int64) error {
	f.lastDeleteID = id
	return f.deleteErr
}

func (f *fakeEventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	return f.getBySlugResult, f.getBySlugErr
}

func (f *fakeEventService) List(ctx context.Context) ([]*domain.Event, error) {
	return f.listResult, f.listErr
}

func (f *fakeEventService) ListPage(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int64, error) {
	f.lastListParams = params
	return f.listPageResult, f.listPageTotal, f.listPageErr
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerResult  *domain.Registration
	registerVerrs   validation.Errors
	registerErr     error
	lastRegisterEvt *domain.Event
	lastRegisterUID int64
	lastComment     string

	dropErr     error
	lastDropUID int64

	listResult []*domain.Registrant
	listErr    error

	isRegistered    bool
	isRegisteredErr error
}

func (f *fakeRegistrationService) Register(ctx context.Context, event *domain.Event, userID int64, comment string) (*domain.Registration, validation.Errors, error) {
	f.lastRegisterEvt = event
	f.lastRegisterUID = userID
	f.lastComment = comment
	return f.registerResult, f.registerVerrs, f.registerErr
}

func (f *fakeRegistrationService) Drop(ctx context.Context, userID int64) error {
	f.lastDropUID = userID
	return f.dropErr
}

func (f *fakeRegistrationService) ListForEvent(ctx context.Context, eventID int64) ([]*domain.Registrant, error) {
	return f.listResult, f.listErr
}

func (f *fakeRegistrationService) IsRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	return f.isRegistered, f.isRegisteredErr
}

func withClaims(r *http.Request, claims *domain.TokenClaims) *http.Request {
	return r.WithContext(middleware.SetClaims(r.Context(), claims))
}

func decodeEnvelope(t *testing.T, body io.Reader) (json.RawMessage, *helpers.APIError) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope.Data, envelope.Error
}

func TestEventController_ListEvents(t *testing.T) {
	events := &fakeEventService{
		listPageResult: []*domain.Event{{ID: 1, Name: "Go Meetup", Slug: "go-meetup"}},
		listPageTotal:  25,
	}
	c := NewEventController(testLogger, events, &fakeRegistrationService{})

	r := httptest.NewRequest(http.MethodGet, "/events?page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	c.ListEvents(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, events.lastListParams)

	data, apiErr := decodeEnvelope(t, w.Body)
	require.Nil(t, apiErr)
	var resp ListEventsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "go-meetup", resp.Events[0].Slug)
	assert.Equal(t, int64(25), resp.Pagination.Total)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)
}

func TestEventController_ListEvents_service_failure(t *testing.T) {
	events := &fakeEventService{listPageErr: errors.New("boom")}
	c := NewEventController(testLogger, events, &fakeRegistrationService{})

	r := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	c.ListEvents(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	_, apiErr := decodeEnvelope(t, w.Body)
	require.NotNil(t, apiErr)
	assert.Equal(t, helpers.ErrCodeInternalError, apiErr.Code)
}

func TestEventController_GetEvent(t *testing.T) {
	events := &fakeEventService{
		getBySlugResult: &domain.Event{ID: 5, Name: "Go Meetup", Slug: "go-meetup"},
	}
	registrations := &fakeRegistrationService{
		listResult:   []*domain.Registrant{{ID: 1, Name: "Alice", Comment: "first!"}},
		isRegistered: true,
	}
	c := NewEventController(testLogger, events, registrations)

	t.Run("anonymous caller", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/events/go-meetup", nil)
		r.SetPathValue("slug", "go-meetup")
		w := httptest.NewRecorder()
		c.GetEvent(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data, _ := decodeEnvelope(t, w.Body)
		var resp GetEventResponse
		require.NoError(t, json.Unmarshal(data, &resp))
		assert.Equal(t, "Go Meetup", resp.Event.Name)
		require.Len(t, resp.Registrants, 1)
		assert.False(t, resp.Registered, "anonymous callers are never registered")
	})

	t.Run("authenticated caller sees own registration state", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/events/go-meetup", nil)
		r.SetPathValue("slug", "go-meetup")
		r = withClaims(r, &domain.TokenClaims{UserID: 2, Username: "alice"})
		w := httptest.NewRecorder()
		c.GetEvent(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data, _ := decodeEnvelope(t, w.Body)
		var resp GetEventResponse
		require.NoError(t, json.Unmarshal(data, &resp))
		assert.True(t, resp.Registered)
	})
}

func TestEventController_GetEvent_not_found(t *testing.T) {
	events := &fakeEventService{getBySlugErr: domain.ErrNotFound}
	c := NewEventController(testLogger, events, &fakeRegistrationService{})

	r := httptest.NewRequest(http.MethodGet, "/events/nope", nil)
	r.SetPathValue("slug", "nope")
	w := httptest.NewRecorder()
	c.GetEvent(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	_, apiErr := decodeEnvelope(t, w.Body)
	require.NotNil(t, apiErr)
	assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
}

func TestEventController_ListAllEvents(t *testing.T) {
	events := &fakeEventService{
		listResult: []*domain.Event{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
	}
	c := NewEventController(testLogger, events, &fakeRegistrationService{})

	r := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
	w := httptest.NewRecorder()
	c.ListAllEvents(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	data, _ := decodeEnvelope(t, w.Body)
	var resp []*domain.Event
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Len(t, resp, 2)
}

func TestEventController_CreateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		events := &fakeEventService{
			createResult: &domain.Event{ID: 1, Name: "Go Meetup", Slug: "go-meetup"},
		}
		c := NewEventController(testLogger, events, &fakeRegistrationService{})

		body, _ := json.Marshal(EventRequest{Name: "Go Meetup", Location: "Reykjavik"})
		r := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
		r = withClaims(r, &domain.TokenClaims{UserID: 3, Admin: true})
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(3), events.lastCreatorID)
		assert.Equal(t, "Go Meetup", events.lastCreateIn.Name)
	})

	t.Run("validation failure", func(t *testing.T) {
		events := &fakeEventService{
			createVerrs: validation.Single("name", validation.MsgNameTaken),
		}
		c := NewEventController(testLogger, events, &fakeRegistrationService{})

		body, _ := json.Marshal(EventRequest{Name: "Go Meetup"})
		r := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
		r = withClaims(r, &domain.TokenClaims{UserID: 3, Admin: true})
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		_, apiErr := decodeEnvelope(t, w.Body)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeValidation, apiErr.Code)
		assert.Equal(t, validation.MsgNameTaken, apiErr.Fields["name"])
	})

	t.Run("missing claims", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{}, &fakeRegistrationService{})

		body, _ := json.Marshal(EventRequest{Name: "Go Meetup"})
		r := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{}, &fakeRegistrationService{})

		r := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader([]byte("{")))
		r = withClaims(r, &domain.TokenClaims{UserID: 3, Admin: true})
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		events := &fakeEventService{
			updateResult: &domain.Event{ID: 9, Name: "New Name", Slug: "new-name"},
		}
		c := NewEventController(testLogger, events, &fakeRegistrationService{})

		body, _ := json.Marshal(EventRequest{Name: "New Name"})
		r := httptest.NewRequest(http.MethodPut, "/admin/events/9", bytes.NewReader(body))
		r.SetPathValue("id", "9")
		w := httptest.NewRecorder()
		c.UpdateEvent(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(9), events.lastUpdateID)
	})

	t.Run("invalid id", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{}, &fakeRegistrationService{})

		r := httptest.NewRequest(http.MethodPut, "/admin/events/abc", nil)
		r.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		c.UpdateEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		events := &fakeEventService{updateErr: domain.ErrNotFound}
		c := NewEventController(testLogger, events, &fakeRegistrationService{})

		body, _ := json.Marshal(EventRequest{Name: "New Name"})
		r := httptest.NewRequest(http.MethodPut, "/admin/events/404", bytes.NewReader(body))
		r.SetPathValue("id", "404")
		w := httptest.NewRecorder()
		c.UpdateEvent(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	events := &fakeEventService{}
	c := NewEventController(testLogger, events, &fakeRegistrationService{})

	r := httptest.NewRequest(http.MethodDelete, "/admin/events/9", nil)
	r.SetPathValue("id", "9")
	w := httptest.NewRecorder()
	c.DeleteEvent(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(9), events.lastDeleteID)
	assert.Empty(t, w.Body.String())
}
