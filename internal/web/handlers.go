// Package web implements the HTTP/WebSocket server (component K): a
// chi.Router exposing translate/find/regex/dict endpoints over an
// in-memory dictionary, plus a WebSocket endpoint that streams Translate
// output frame-by-frame as the matcher commits.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/trieplace/trieplace/internal/cache"
	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/match"
	"github.com/trieplace/trieplace/internal/regexgen"
	"github.com/trieplace/trieplace/internal/token"
)

// PersistFunc, when non-nil, is called on every dictionary mutation made
// through the HTTP API so a configured store.Store stays in sync.
type PersistFunc func(key, value string) error

// RemoveFunc mirrors PersistFunc for deletions.
type RemoveFunc func(key string) (string, error)

// Handlers holds the dependencies the HTTP routes need.
type Handlers struct {
	Dict       *dict.Dict[string]
	Tokenizer  token.Tokenizer
	RegexCache *cache.RegexCache
	Logger     *zap.Logger
	Persist    PersistFunc
	Remove     RemoveFunc

	// JWTSigningKey, when non-empty, gates all dict routes, GET included.
	JWTSigningKey string
}

// NewRouter builds the chi.Router for the server, wiring middleware and
// all v1 routes.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recoverPanics(h.Logger))
	r.Use(logRequests(h.Logger))

	r.Post("/v1/translate", h.handleTranslate)
	r.Post("/v1/find", h.handleFind)
	r.Get("/v1/regex", h.handleRegex)
	r.Get("/v1/stream", h.handleStream)

	r.Group(func(r chi.Router) {
		r.Use(requireBearerToken(h.JWTSigningKey))
		r.Get("/v1/dict/{key}", h.handleDictGet)
		r.Put("/v1/dict/{key}", h.handleDictPut)
		r.Delete("/v1/dict/{key}", h.handleDictDelete)
	})

	return r
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Result string `json:"result"`
}

func (h *Handlers) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	it := match.Translate(h.Dict.Trie(), h.Tokenizer.Tokenize([]rune(req.Text)))
	writeJSON(w, http.StatusOK, translateResponse{Result: collect(it)})
}

type findRequest struct {
	Text        string `json:"text"`
	Overlapping bool   `json:"overlapping"`
}

type findResponse struct {
	Matches []string `json:"matches"`
}

func (h *Handlers) handleFind(w http.ResponseWriter, r *http.Request) {
	var req findRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	it := match.FindAll(h.Dict.Trie(), h.Tokenizer.Tokenize([]rune(req.Text)), req.Overlapping)
	var matches []string
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		matches = append(matches, m)
	}
	writeJSON(w, http.StatusOK, findResponse{Matches: matches})
}

type regexResponse struct {
	Pattern string `json:"pattern"`
}

func (h *Handlers) handleRegex(w http.ResponseWriter, r *http.Request) {
	pairs := h.Dict.Iter()
	digest := cache.DigestPairs(pairs)

	if h.RegexCache != nil {
		if cached, ok := h.RegexCache.Get(digest); ok {
			writeJSON(w, http.StatusOK, regexResponse{Pattern: cached})
			return
		}
	}

	pattern := regexgen.Compile(h.Dict.Trie(), regexgen.DefaultOptions())
	if h.RegexCache != nil {
		h.RegexCache.Put(digest, pattern)
	}
	writeJSON(w, http.StatusOK, regexResponse{Pattern: pattern})
}

type dictEntryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handlers) handleDictGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.Dict.Get(key)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dictEntryResponse{Key: key, Value: value})
}

type dictPutRequest struct {
	Value string `json:"value"`
}

func (h *Handlers) handleDictPut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req dictPutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var err error
	if h.Persist != nil {
		err = h.Persist(key, req.Value)
	} else {
		err = h.Dict.Insert(key, req.Value)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dict.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dictEntryResponse{Key: key, Value: req.Value})
}

func (h *Handlers) handleDictDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var (
		value string
		err   error
	)
	if h.Remove != nil {
		value, err = h.Remove(key)
	} else {
		value, err = h.Dict.Pop(key)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dict.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dictEntryResponse{Key: key, Value: value})
}

func collect(it token.Iterator) string {
	var out []byte
	for {
		tok, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, tok...)
	}
	return string(out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeTimeout bounds how long a websocket write may block, matching the
// server's general no-hang policy.
const writeTimeout = 10 * time.Second
