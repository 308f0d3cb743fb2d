package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return openapiSpec
}

func loadRouter(ctx context.Context) (routers.Router, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return legacyrouter.NewRouter(doc)
}

// validateRequests rejects requests whose parameters violate the OpenAPI document.
// Routes the document does not describe pass through untouched.
func validateRequests(router routers.Router, reject func(http.ResponseWriter, *http.Request, int, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{ExcludeRequestBody: true},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				reject(w, r, http.StatusBadRequest, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
