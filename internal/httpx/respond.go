package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Afthercaf/Web-Tecnoshop/internal/auth"
	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/stores"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
)

const (
	userCookie  = "token"
	storeCookie = "storeToken"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the service's status classes:
// 401 identity, 400 validation (insufficient stock included), 404
// not-found-or-unauthorized, 500 everything else.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *catalog.InsufficientStockError
	switch {
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.Is(err, orders.ErrNoLines),
		errors.Is(err, orders.ErrBadQuantity),
		errors.Is(err, orders.ErrBadPaymentMethod),
		errors.Is(err, orders.ErrAddressRequired),
		errors.Is(err, orders.ErrNoIdentity),
		errors.Is(err, orders.ErrBadTransition),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, stores.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, stores.ErrStoreNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func setAuthCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

func clearAuthCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
