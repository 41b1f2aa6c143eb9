package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

type swaggerDoc struct {
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	return doc
}

// Каждый маршрут из аннотаций обработчиков должен быть описан в шаблоне.
func TestDocCoversAnnotatedRoutes(t *testing.T) {
	doc := readDoc(t)
	assert.Equal(t, "/api/v1", doc.BasePath)

	files, err := filepath.Glob("../internal/delivery/v1/http/*.go")
	require.NoError(t, err)

	routes := 0
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		src, err := os.ReadFile(name)
		require.NoError(t, err)

		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			routes++
			path, method := m[1], m[2]
			ops, ok := doc.Paths[path]
			if assert.Truef(t, ok, "path %s is not documented", path) {
				assert.Containsf(t, ops, method, "%s %s is not documented", method, path)
			}
		}
	}

	require.Positive(t, routes)

	documented := 0
	for _, ops := range doc.Paths {
		documented += len(ops)
	}
	assert.Equal(t, routes, documented, "doc has operations without handlers")
}

// Ссылки на схемы не должны указывать в пустоту.
func TestDocReferencesResolve(t *testing.T) {
	doc := readDoc(t)
	raw := SwaggerInfo.ReadDoc()

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, m := range refs {
		assert.Containsf(t, doc.Definitions, m[1], "missing definition %s", m[1])
	}

	for _, name := range []string{
		"http.createPartRequest",
		"http.createVariantRequest",
		"http.createDependencyRequest",
		"http.createCustomPriceRequest",
		"domain.CustomPricePatch",
	} {
		assert.Contains(t, doc.Definitions, name)
	}
}
