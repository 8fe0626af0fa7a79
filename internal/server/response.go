package server

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/crypto/blake2b"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// etag returns a strong validator for body.
func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// acceptsBrotli reports whether the Accept-Encoding header lists br with a
// non-zero quality.
func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "br") {
			continue
		}
		_, q, found := strings.Cut(params, "q=")
		if !found {
			return true
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		return err == nil && v > 0
	}
	return false
}

// writeBody sends a complete body with an ETag, answering 304 when the
// client already holds it and compressing with brotli when accepted.
func (s *Server) writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	tag := etag(body)
	h := w.Header()
	h.Set("ETag", tag)
	h.Set("Cache-Control", "no-cache")
	if s.compress {
		h.Add("Vary", "Accept-Encoding")
	}

	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Type", contentType)

	if s.compress && acceptsBrotli(r.Header.Get("Accept-Encoding")) {
		var buf bytes.Buffer
		bw := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := bw.Write(body); err == nil && bw.Close() == nil {
			h.Set("Content-Encoding", "br")
			body = buf.Bytes()
		} else {
			s.logger.Warn("brotli compression failed, sending identity",
				"request_id", RequestID(r.Context()),
			)
		}
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write response", "request_id", RequestID(r.Context()), "error", err)
	}
}

func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeBody(w, r, "application/json", body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "path", r.URL.Path, "error", err)
	}

	body, _ := json.Marshal(errorBody{Error: err.Error(), RequestID: id})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
