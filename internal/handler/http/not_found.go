package http

import (
	"net/http"

	"github.com/MKhiriev/go-qr-keeper/internal/utils"
)

// notFound is registered both as the NotFound and the MethodNotAllowed
// handler, so unsupported methods do not reveal which paths exist.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
