package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "laborreport/internal/platform/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v body=%q", err, rec.Body.String())
	}
	return env
}

func TestServerRoutesAndRequestID(t *testing.T) {
	srv := NewServer(ServerOptions{})
	if srv.Addr() != DefaultAddr {
		t.Fatalf("addr = %q", srv.Addr())
	}
	srv.Router().Route("/v1", func(r Router) {
		r.Get("/echo/{name}", Call(func(req *stdhttp.Request) (any, error) {
			return map[string]string{"name": URLParam(req, "name")}, nil
		}))
	})

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/v1/echo/ron", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if env.RequestID == "" {
		t.Fatalf("expected request id, got %+v", env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["name"] != "ron" {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestServerNotFoundIsJSON(t *testing.T) {
	srv := NewServer(ServerOptions{})
	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/missing", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Error == "" {
		t.Fatalf("expected error text, got %+v", env)
	}
}

func TestCallMapsErrorCodes(t *testing.T) {
	h := Call(func(*stdhttp.Request) (any, error) {
		return nil, perr.WithField(perr.NotFoundf("report missing"), "name")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Code != perr.ErrorCodeNotFound || env.Field != "name" || env.Error != "report missing" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecoverJSON(t *testing.T) {
	srv := NewServer(ServerOptions{})
	srv.Router().Get("/boom", func(stdhttp.ResponseWriter, *stdhttp.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/boom", nil))
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Error != "internal error" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(ServerOptions{AllowedOrigins: []string{"http://localhost:5173"}})
	srv.Router().Get("/reports", Call(func(*stdhttp.Request) (any, error) { return []string{}, nil }))

	req := httptest.NewRequest(stdhttp.MethodOptions, "/reports", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", stdhttp.MethodGet)
	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}
}
