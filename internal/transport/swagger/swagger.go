package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocumentPath is where the router serves the raw OpenAPI document.
const DocumentPath = "/openapi.yml"

// Handler serves the swagger UI backed by the document at DocumentPath.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(DocumentPath),
	)
}
