package http

import nethttp "net/http"

// NewRouter registers the gateway routes on a ServeMux. The handler does
// its own sub-path dispatch, so only route roots are mounted here.
func NewRouter(handler nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	for _, route := range []string{
		"/health",
		"/ready",
		"/grid",
		"/refresh",
		"/canchas",
		"/canchas/",
		"/tipos-cancha",
		"/horarios",
		"/servicios",
		"/metodos-pago",
		"/reservas",
		"/reservas/",
		"/torneos/",
		"/admin/",
	} {
		mux.Handle(route, handler)
	}
	return mux
}
