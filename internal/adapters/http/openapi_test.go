package http_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"

	handler "github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/http"
)

// findOpenAPISpec locates api/openapi.yaml by walking up from the test directory.
func findOpenAPISpec(t *testing.T) string {
	t.Helper()
	dir, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "api", "openapi.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatalf("could not find api/openapi.yaml")
	return ""
}

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	data, err := os.ReadFile(findOpenAPISpec(t))
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	return spec
}

func TestOpenAPISpec(t *testing.T) {
	spec := loadSpec(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedSchemas := []string{
		"GeoPoint",
		"Input",
		"RenderSnapshot",
		"Polygon",
		"Circle",
		"Rectangle",
		"Selection",
		"CornerResult",
		"APIError",
		"Pagination",
	}
	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	if spec.Info.Title != "Geodraw Shape Authoring API" {
		t.Errorf("unexpected title %q", spec.Info.Title)
	}
	if len(spec.Servers) == 0 {
		t.Error("expected at least one server")
	}
}

// TestOpenAPISpec_CoversRoutes checks every registered route is documented.
func TestOpenAPISpec_CoversRoutes(t *testing.T) {
	spec := loadSpec(t)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, makeDeps())

	undocumented := map[string]bool{"/metrics": true, "/docs": true, "/docs/openapi.yaml": true, "/ws": true}
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || undocumented[r.Path] {
			continue
		}
		item := spec.Paths.Find(openAPIPath(r.Path))
		if item == nil {
			t.Errorf("route %s %s missing from openapi.yaml", r.Method, r.Path)
			continue
		}
		if item.GetOperation(r.Method) == nil {
			t.Errorf("openapi.yaml documents %s but not method %s", r.Path, r.Method)
		}
	}
}

// openAPIPath turns /v1/shapes/:kind into /v1/shapes/{kind}.
func openAPIPath(p string) string {
	out := []byte{}
	for i := 0; i < len(p); i++ {
		if p[i] != ':' {
			out = append(out, p[i])
			continue
		}
		j := i + 1
		for j < len(p) && p[j] != '/' {
			j++
		}
		out = append(out, '{')
		out = append(out, p[i+1:j]...)
		out = append(out, '}')
		i = j - 1
	}
	return string(out)
}
