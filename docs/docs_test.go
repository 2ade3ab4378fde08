package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func TestSwaggerDoc_CoversRoutes(t *testing.T) {
	req := require.New(t)

	raw, err := swag.ReadDoc()
	req.NoError(err)

	var doc swaggerDoc
	req.NoError(json.Unmarshal([]byte(raw), &doc))

	expected := map[string][]string{
		"/health":        {"get"},
		"/participants":  {"get", "post"},
		"/status":        {"post"},
		"/messages":      {"get", "post"},
		"/messages/{id}": {"put", "delete"},
		"/ws":            {"get"},
	}
	for path, methods := range expected {
		ops, ok := doc.Paths[path]
		req.True(ok, "missing path %s", path)
		for _, method := range methods {
			req.Contains(ops, method, "missing %s %s", method, path)
		}
	}

	refs := regexp.MustCompile(`#/definitions/([\w.]+)`).FindAllStringSubmatch(raw, -1)
	req.NotEmpty(refs)
	for _, ref := range refs {
		req.Contains(doc.Definitions, ref[1], "unresolved $ref %s", ref[0])
	}
}
