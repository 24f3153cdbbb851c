package swagger

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateSpec loads and validates the OpenAPI document served to clients,
// so a broken spec surfaces at startup instead of in the Swagger UI.
func ValidateSpec(path string) error {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return fmt.Errorf("validate openapi spec: %w", err)
	}

	return nil
}
