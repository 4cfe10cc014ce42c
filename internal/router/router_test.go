package router

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/booking"
	"github.com/iliyamo/appointment-booking/internal/config"
	"github.com/iliyamo/appointment-booking/internal/geo"
	"github.com/iliyamo/appointment-booking/internal/handler"
	"github.com/iliyamo/appointment-booking/internal/session"
	"github.com/iliyamo/appointment-booking/internal/slot"
)

var monday = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

type testStack struct {
	e        *echo.Echo
	slots    *slot.Service
	bookings *booking.Service
	issuer   *session.Issuer
}

func newStack(t *testing.T, rdb *redis.Client) testStack {
	t.Helper()
	noSleep := func(context.Context, time.Duration) error { return nil }
	slots := slot.NewService(geo.Default(), slot.Options{
		Rand:  rand.New(rand.NewPCG(7, 7)),
		Now:   func() time.Time { return monday },
		Sleep: noSleep,
	})
	bookings := booking.NewService(slots, booking.Options{Sleep: noSleep})
	issuer := session.NewIssuer("test-secret", time.Hour)
	log := zap.NewNop()

	cache := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
	e := New(Deps{
		Health:      &handler.HealthHandler{Slots: slots},
		Catalog:     &handler.CatalogHandler{Slots: slots},
		Slots:       &handler.SlotHandler{Slots: slots, Log: log},
		Session:     &handler.SessionHandler{Issuer: issuer, Log: log},
		Bookings:    &handler.BookingHandler{Bookings: bookings, Log: log},
		Issuer:      issuer,
		Redis:       rdb,
		Cache:       cache,
		InventoryID: "inv-test",
	})
	return testStack{e: e, slots: slots, bookings: bookings, issuer: issuer}
}

func (s testStack) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	s := newStack(t, nil)
	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/metrics", "", "").Code)
}

func TestCatalogRoutes(t *testing.T) {
	s := newStack(t, nil)

	provinces := decode[struct{ Items []geo.Province }](t, s.do(t, http.MethodGet, "/v1/provinces", "", ""))
	assert.Len(t, provinces.Items, 9)

	withSlots := decode[struct{ Items []string }](t, s.do(t, http.MethodGet, "/v1/provinces/with-slots", "", ""))
	assert.Len(t, withSlots.Items, 9)

	cities := decode[struct{ Items []geo.City }](t, s.do(t, http.MethodGet, "/v1/provinces/western-cape/cities", "", ""))
	require.NotEmpty(t, cities.Items)
	assert.Equal(t, "cape-town", cities.Items[0].ID)

	branches := decode[struct{ Items []geo.Branch }](t, s.do(t, http.MethodGet, "/v1/cities/cape-town/branches", "", ""))
	assert.Len(t, branches.Items, 6)

	rec := s.do(t, http.MethodGet, "/v1/provinces/gauteng/branch", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	want, ok := s.slots.BranchForProvince("gauteng")
	require.True(t, ok)
	assert.Equal(t, want, decode[geo.Branch](t, rec).ID)

	services := decode[struct{ Items []booking.GovService }](t, s.do(t, http.MethodGet, "/v1/services", "", ""))
	assert.Equal(t, booking.Services, services.Items)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/provinces/atlantis/cities", "", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/provinces/atlantis/branch", "", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/cities/atlantis/branches", "", "").Code)
}

func TestSlotSearchRoute(t *testing.T) {
	s := newStack(t, nil)
	branch, ok := s.slots.BranchForProvince("gauteng")
	require.True(t, ok)

	rec := s.do(t, http.MethodGet, "/v1/slots/search?branch="+branch+"&start=2025-01-06&end=2025-02-04&services=passport", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[slot.Result](t, rec)
	assert.NotEmpty(t, res.Slots)
	assert.Empty(t, res.Alternatives)

	rec = s.do(t, http.MethodGet, "/v1/slots/search?branch=atlantis&start=2025-01-06&end=2025-01-10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slots":[],"alternatives":[]}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/v1/slots/search?branch=x", "", "").Code)
}

func TestSlotSearchIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := newStack(t, rdb)

	target := "/v1/slots/search?branch=bellville&start=2025-01-06&end=2025-01-10"
	first := s.do(t, http.MethodGet, target, "", "")
	second := s.do(t, http.MethodGet, target, "", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestSessionRoute(t *testing.T) {
	s := newStack(t, nil)

	rec := s.do(t, http.MethodPost, "/v1/session",
		`{"id_kind":"sa_id","id_number":"8001015009087","first_name":"Thandi","last_name":"Nkosi"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	tok := decode[session.Token](t, rec)
	claims, err := s.issuer.Parse(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "Thandi", claims.FirstName)

	rec = s.do(t, http.MethodPost, "/v1/session",
		`{"id_kind":"sa_id","id_number":"8001015009086","first_name":"Thandi","last_name":"Nkosi"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/session", `{"id_kind":"sa_id"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/session", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	s := newStack(t, nil)
	first, ok := s.slots.Slot(1)
	require.True(t, ok)

	tok, err := s.issuer.Issue(session.Identity{IDKind: "sa_id", IDNumber: "8001015009087", FirstName: "Thandi", LastName: "Nkosi"})
	require.NoError(t, err)
	body := `{"slot_id":1,"services":["passport"],"email":"thandi@example.co.za","phone":"+27821234567"}`

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/v1/bookings", body, "").Code)

	rec := s.do(t, http.MethodPost, "/v1/bookings", body, tok.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[booking.Booking](t, rec)
	assert.Equal(t, first, b.Slot)
	assert.Equal(t, "Thandi", b.Applicant.FirstName)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/v1/bookings", body, tok.Token).Code)

	got := s.do(t, http.MethodGet, "/v1/bookings/"+b.Reference, "", tok.Token)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, b.Reference, decode[booking.Booking](t, got).Reference)

	other, err := s.issuer.Issue(session.Identity{IDKind: "passport", IDNumber: "A1234567", FirstName: "Lerato", LastName: "Mokoena"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/bookings/"+b.Reference, "", other.Token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/bookings/nope", "", tok.Token).Code)
}

func TestBookingErrorMapping(t *testing.T) {
	s := newStack(t, nil)
	tok, err := s.issuer.Issue(session.Identity{IDKind: "sa_id", IDNumber: "8001015009087", FirstName: "Thandi", LastName: "Nkosi"})
	require.NoError(t, err)

	cases := map[string]struct {
		body string
		want int
	}{
		"unknown slot":    {`{"slot_id":999999,"services":["passport"],"email":"a@b.co","phone":"+27821234567"}`, http.StatusNotFound},
		"unknown service": {`{"slot_id":2,"services":["fishing"],"email":"a@b.co","phone":"+27821234567"}`, http.StatusBadRequest},
		"bad phone":       {`{"slot_id":2,"services":["passport"],"email":"a@b.co","phone":"082"}`, http.StatusBadRequest},
		"no services":     {`{"slot_id":2,"services":[],"email":"a@b.co","phone":"+27821234567"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/bookings", tc.body, tok.Token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}
