package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Afthercaf/Web-Tecnoshop/internal/auth"
	"github.com/Afthercaf/Web-Tecnoshop/internal/stores"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
	"github.com/go-chi/chi/v5"
)

type userDirectory interface {
	Create(ctx context.Context, u *users.User) error
	ByID(ctx context.Context, id string) (*users.User, error)
	ByEmail(ctx context.Context, email string) (*users.User, error)
	SetRole(ctx context.Context, id, role string) error
}

type storeDirectory interface {
	Create(ctx context.Context, s *stores.Store) error
	ByID(ctx context.Context, id string) (*stores.Store, error)
	ByEmail(ctx context.Context, email string) (*stores.Store, error)
	List(ctx context.Context) ([]stores.Store, error)
}

// AuthHandler covers buyer and vendor account flows: register, login,
// logout, verify for each identity kind.
type AuthHandler struct {
	Users  userDirectory
	Stores storeDirectory
	Auth   *auth.Manager
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/logout", h.logout)
	r.Get("/auth/verify", h.verify)
	r.Post("/auth/register-store", h.registerStore)
	r.Post("/auth/login-store", h.loginStore)
	r.Get("/auth/verify-store", h.verifyStore)
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u := &users.User{Username: req.Username, Email: req.Email, PasswordHash: hash, Address: req.Address}
	if err := h.Users.Create(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}

	tok, err := h.Auth.IssueUser(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	setAuthCookie(w, userCookie, tok, h.Auth.TTL())
	writeJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	u, err := h.Users.ByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		// same answer for unknown email and wrong password
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	tok, err := h.Auth.IssueUser(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	setAuthCookie(w, userCookie, tok, h.Auth.TTL())
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w, userCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Auth.VerifyUser(cookieValue(r, userCookie))
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.Users.ByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type registerStoreReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Logo     string `json:"logo"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// registerStore creates a vendor account owned by the authenticated
// buyer and flips the buyer's role to vendor.
func (h *AuthHandler) registerStore(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.Auth.VerifyUser(cookieValue(r, userCookie))
	if err != nil {
		writeError(w, err)
		return
	}

	var req registerStoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	s := &stores.Store{
		OwnerID:      ownerID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Logo:         req.Logo,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := h.Stores.Create(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Users.SetRole(r.Context(), ownerID, users.RoleVendor); err != nil {
		writeError(w, err)
		return
	}

	tok, err := h.Auth.IssueStore(s.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	setAuthCookie(w, storeCookie, tok, h.Auth.TTL())
	writeJSON(w, http.StatusCreated, s)
}

func (h *AuthHandler) loginStore(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	s, err := h.Stores.ByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(s.PasswordHash, req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	tok, err := h.Auth.IssueStore(s.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	setAuthCookie(w, storeCookie, tok, h.Auth.TTL())
	writeJSON(w, http.StatusOK, s)
}

func (h *AuthHandler) verifyStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := h.Auth.VerifyStore(cookieValue(r, storeCookie))
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := h.Stores.ByID(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
