package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/token"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	d := dict.New[string](token.Identity{})
	if err := d.Insert("asd", "111"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return &Handlers{
		Dict:      d,
		Tokenizer: token.Identity{},
		Logger:    zap.NewNop(),
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleTranslate(t *testing.T) {
	r := NewRouter(newTestHandlers(t))
	rec := doJSON(t, r, http.MethodPost, "/v1/translate", translateRequest{Text: "erasdfghjkll"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp translateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result != "er111fghjkll" {
		t.Fatalf("got %q", resp.Result)
	}
}

func TestHandleFind(t *testing.T) {
	r := NewRouter(newTestHandlers(t))
	rec := doJSON(t, r, http.MethodPost, "/v1/find", findRequest{Text: "xxasdxx"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp findResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0] != "asd" {
		t.Fatalf("got %v", resp.Matches)
	}
}

func TestHandleRegex(t *testing.T) {
	r := NewRouter(newTestHandlers(t))
	rec := doJSON(t, r, http.MethodGet, "/v1/regex", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp regexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pattern == "" {
		t.Fatalf("expected non-empty pattern")
	}
}

func TestHandleDictGetMissing(t *testing.T) {
	r := NewRouter(newTestHandlers(t))
	rec := doJSON(t, r, http.MethodGet, "/v1/dict/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleDictPutAndDelete(t *testing.T) {
	r := NewRouter(newTestHandlers(t))

	putRec := doJSON(t, r, http.MethodPut, "/v1/dict/foo", dictPutRequest{Value: "bar"})
	if putRec.Code != http.StatusOK {
		t.Fatalf("put status %d", putRec.Code)
	}

	getRec := doJSON(t, r, http.MethodGet, "/v1/dict/foo", nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status %d", getRec.Code)
	}

	delRec := doJSON(t, r, http.MethodDelete, "/v1/dict/foo", nil)
	if delRec.Code != http.StatusOK {
		t.Fatalf("delete status %d", delRec.Code)
	}

	getAgain := doJSON(t, r, http.MethodGet, "/v1/dict/foo", nil)
	if getAgain.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getAgain.Code)
	}
}

func TestDictRoutesRequireBearerTokenWhenConfigured(t *testing.T) {
	h := newTestHandlers(t)
	h.JWTSigningKey = "secret"
	r := NewRouter(h)

	rec := doJSON(t, r, http.MethodGet, "/v1/dict/asd", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	r := NewRouter(newTestHandlers(t))
	rec := doJSON(t, r, http.MethodGet, "/v1/regex", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}
