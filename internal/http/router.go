package httpserver

import "net/http"

// Routes groups handlers. Auth wraps the operator-only endpoints.
type Routes struct {
	Login        http.HandlerFunc
	AuthCheck    http.HandlerFunc
	Entry        http.HandlerFunc
	Exit         http.HandlerFunc
	ActiveLookup http.HandlerFunc
	ListSlots    http.HandlerFunc
	SlotStatus   http.HandlerFunc
	CorrectTime  http.HandlerFunc
	Stats        http.HandlerFunc
	SlotsFeed    http.HandlerFunc
	Health       http.HandlerFunc

	Auth func(http.HandlerFunc) http.HandlerFunc
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	auth := routes.Auth
	if auth == nil {
		auth = func(h http.HandlerFunc) http.HandlerFunc { return h }
	}

	mux := http.NewServeMux()
	if routes.Login != nil {
		mux.Handle("/auth/login", method(http.MethodPost, routes.Login))
	}
	if routes.AuthCheck != nil {
		mux.Handle("/auth/check", method(http.MethodGet, auth(routes.AuthCheck)))
	}
	if routes.Entry != nil {
		mux.Handle("/parking/entry", method(http.MethodPost, routes.Entry))
	}
	if routes.Exit != nil {
		mux.Handle("/parking/exit", method(http.MethodPost, auth(routes.Exit)))
	}
	if routes.ActiveLookup != nil {
		mux.Handle("/parking/active", method(http.MethodGet, routes.ActiveLookup))
	}
	if routes.ListSlots != nil {
		mux.Handle("/slots", method(http.MethodGet, routes.ListSlots))
	}
	if routes.SlotStatus != nil {
		mux.Handle("/slots/status", method(http.MethodPatch, auth(routes.SlotStatus)))
	}
	if routes.CorrectTime != nil {
		mux.Handle("/slots/time", method(http.MethodPatch, auth(routes.CorrectTime)))
	}
	if routes.Stats != nil {
		mux.Handle("/dashboard/stats", method(http.MethodGet, auth(routes.Stats)))
	}
	if routes.SlotsFeed != nil {
		mux.Handle("/ws/slots", method(http.MethodGet, routes.SlotsFeed))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
