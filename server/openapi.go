package server

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml
var openAPIFS embed.FS

const redocPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>pbrates API</title>
  </head>
  <body>
    <redoc spec-url="/openapi.yaml"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>`

// OpenAPI serves the embedded API description
func (s *Server) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	b, err := openAPIFS.ReadFile("openapi.yaml")
	if err != nil {
		s.logger.Error("unable to read openapi description", "err", err)

		http.Error(w, "openapi not found", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(b) //nolint:errcheck // Fine to ignore
}

// Redoc serves the API documentation page
func (s *Server) Redoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, _ = w.Write([]byte(redocPage)) //nolint:errcheck // Fine to ignore
}
