// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const sessionCookie = "sid"

// session is one logged-in user. The mock accepts any password for a user
// present in the fixture set; what matters offline is the shape of the
// contract, not credential checking.
type session struct {
	user string
	csrf string
}

// Handlers implements the backend HTTP contract over the fixture store.
type Handlers struct {
	store       *Store
	broadcaster *ClientRegistry

	mu       sync.RWMutex
	sessions map[string]*session // sid cookie value → session
}

// NewHandlers wires handlers to a store and an event broadcaster.
func NewHandlers(store *Store, broadcaster *ClientRegistry) *Handlers {
	return &Handlers{
		store:       store,
		broadcaster: broadcaster,
		sessions:    make(map[string]*session),
	}
}

// writeMessage wraps a payload in the method-call envelope.
func writeMessage(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"message": payload})
}

// writeData wraps a payload in the resource envelope.
func writeData(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": payload})
}

// writeError emits the backend error shape.
func writeError(w http.ResponseWriter, status int, excType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"exc_type": excType, "message": message})
}

// Login opens a session for a fixture user and sets the sid cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Usr string `json:"usr"`
		Pwd string `json:"pwd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "malformed login payload")
		return
	}
	if creds.Pwd == "" || h.store.Get("User", creds.Usr) == nil {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "invalid login credentials")
		return
	}

	sid := uuid.New().String()
	h.mu.Lock()
	h.sessions[sid] = &session{user: creds.Usr, csrf: uuid.New().String()}
	h.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	writeMessage(w, http.StatusOK, "Logged In")
}

// Logout drops the session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.mu.Lock()
		delete(h.sessions, cookie.Value)
		h.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeMessage(w, http.StatusOK, "Logged Out")
}

// CSRFToken returns the session's CSRF token.
func (h *Handlers) CSRFToken(w http.ResponseWriter, r *http.Request) {
	if sess := h.currentSession(r); sess != nil {
		writeMessage(w, http.StatusOK, sess.csrf)
		return
	}
	writeError(w, http.StatusUnauthorized, "AuthenticationError", "no active session")
}

// LoggedUser reports the session user, or the literal "Guest".
func (h *Handlers) LoggedUser(w http.ResponseWriter, r *http.Request) {
	if sess := h.currentSession(r); sess != nil {
		writeMessage(w, http.StatusOK, sess.user)
		return
	}
	writeMessage(w, http.StatusOK, "Guest")
}

// UserInfo returns the session user's fixture profile.
func (h *Handlers) UserInfo(w http.ResponseWriter, r *http.Request) {
	sess := h.currentSession(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "no active session")
		return
	}
	doc := h.store.Get("User", sess.user)
	if doc == nil {
		writeError(w, http.StatusNotFound, "DoesNotExistError", "user not found")
		return
	}
	writeMessage(w, http.StatusOK, doc)
}

// RevealVaultEntry returns a vault entry including its password.
func (h *Handlers) RevealVaultEntry(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("entry")
	doc := h.store.Get("Vault Entry", name)
	if doc == nil {
		writeError(w, http.StatusNotFound, "DoesNotExistError", fmt.Sprintf("vault entry %s not found", name))
		return
	}
	writeMessage(w, http.StatusOK, doc)
}

// ListDocs handles GET /api/resource/{doctype}.
func (h *Handlers) ListDocs(w http.ResponseWriter, r *http.Request) {
	doctype := pathDoctype(r)

	var fields []string
	if raw := r.URL.Query().Get("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			writeError(w, http.StatusBadRequest, "ValidationError", "malformed fields parameter")
			return
		}
	}

	var filters []Filter
	if raw := r.URL.Query().Get("filters"); raw != "" {
		var triplets [][3]string
		if err := json.Unmarshal([]byte(raw), &triplets); err != nil {
			writeError(w, http.StatusBadRequest, "ValidationError", "malformed filters parameter")
			return
		}
		for _, t := range triplets {
			filters = append(filters, Filter{Field: t[0], Operator: t[1], Value: t[2]})
		}
	}

	docs := h.store.List(doctype, filters, fields)
	if docs == nil {
		docs = []Doc{}
	}
	writeData(w, http.StatusOK, docs)
}

// GetDoc handles GET /api/resource/{doctype}/{name}.
func (h *Handlers) GetDoc(w http.ResponseWriter, r *http.Request) {
	doctype, name := pathDoctype(r), pathName(r)
	doc := h.store.Get(doctype, name)
	if doc == nil {
		writeError(w, http.StatusNotFound, "DoesNotExistError", fmt.Sprintf("%s %s not found", doctype, name))
		return
	}
	writeData(w, http.StatusOK, doc)
}

// CreateDoc handles POST /api/resource/{doctype}.
func (h *Handlers) CreateDoc(w http.ResponseWriter, r *http.Request) {
	doctype := pathDoctype(r)
	var doc Doc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "malformed document payload")
		return
	}
	created := h.store.Insert(doctype, doc)
	h.broadcaster.Broadcast(DocEvent{Event: "doc_insert", Doctype: doctype, Name: fmt.Sprint(created["name"])})
	writeData(w, http.StatusOK, created)
}

// UpdateDoc handles PUT /api/resource/{doctype}/{name}.
func (h *Handlers) UpdateDoc(w http.ResponseWriter, r *http.Request) {
	doctype, name := pathDoctype(r), pathName(r)
	var changes Doc
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "malformed document payload")
		return
	}
	updated := h.store.Update(doctype, name, changes)
	if updated == nil {
		writeError(w, http.StatusNotFound, "DoesNotExistError", fmt.Sprintf("%s %s not found", doctype, name))
		return
	}
	h.broadcaster.Broadcast(DocEvent{Event: "doc_update", Doctype: doctype, Name: name})
	writeData(w, http.StatusOK, updated)
}

// DeleteDoc handles DELETE /api/resource/{doctype}/{name}.
func (h *Handlers) DeleteDoc(w http.ResponseWriter, r *http.Request) {
	doctype, name := pathDoctype(r), pathName(r)
	if !h.store.Delete(doctype, name) {
		writeError(w, http.StatusNotFound, "DoesNotExistError", fmt.Sprintf("%s %s not found", doctype, name))
		return
	}
	h.broadcaster.Broadcast(DocEvent{Event: "doc_delete", Doctype: doctype, Name: name})
	writeMessage(w, http.StatusOK, "ok")
}

// RequireSession rejects requests without a valid sid cookie.
func (h *Handlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.currentSession(r) == nil {
			writeError(w, http.StatusUnauthorized, "AuthenticationError", "no active session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCSRF enforces the CSRF token header on mutating requests, matching
// the real backend's behavior for cookie-based sessions.
func (h *Handlers) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			sess := h.currentSession(r)
			if sess == nil || r.Header.Get("X-Frappe-CSRF-Token") != sess.csrf {
				writeError(w, http.StatusForbidden, "CSRFTokenError", "invalid or missing csrf token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) currentSession(r *http.Request) *session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[cookie.Value]
}

func pathDoctype(r *http.Request) string {
	raw := chi.URLParam(r, "doctype")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func pathName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
