package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/swaggo/swag"
)

// GetSwagger returns the rendered OpenAPI document, parsed and validated.
func GetSwagger(ctx context.Context) (*openapi3.T, error) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// NewRouter builds a kin-openapi router over the document, matching request
// paths as-is since the document declares no servers.
func NewRouter(ctx context.Context) (routers.Router, error) {
	doc, err := GetSwagger(ctx)
	if err != nil {
		return nil, err
	}
	return legacyrouter.NewRouter(doc)
}

// RegisterDocsRoutes serves the OpenAPI document.
func RegisterDocsRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})
}
