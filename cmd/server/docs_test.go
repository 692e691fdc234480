package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"codeberg.org/wexam/server/api/rest/dictionary"
	"codeberg.org/wexam/server/api/rest/generate"
	"codeberg.org/wexam/server/api/rest/health"
	"codeberg.org/wexam/server/api/rest/quizzes"
	"codeberg.org/wexam/server/api/rest/results"
	"codeberg.org/wexam/server/api/rest/users"
	"codeberg.org/wexam/server/api/rest/words"
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)
	pathParam        = regexp.MustCompile(`\{(\w+)\}`)
)

// collects "METHOD /path" from the @Router lines of every exported handler
func documentedRoutes(t *testing.T) map[string]string {
	t.Helper()

	files, err := filepath.Glob("../../api/rest/*/handlers.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	routes := map[string]string{}
	fset := token.NewFileSet()

	for _, file := range files {
		parsed, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		require.NoError(t, err)

		for _, decl := range parsed.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || !fn.Name.IsExported() {
				continue
			}

			name := filepath.Base(filepath.Dir(file)) + "." + fn.Name.Name
			if !assert.NotNil(t, fn.Doc, "%s has no doc comment", name) {
				continue
			}

			m := routerAnnotation.FindStringSubmatch(fn.Doc.Text())
			if !assert.NotNil(t, m, "%s has no @Router annotation", name) {
				continue
			}

			path := pathParam.ReplaceAllString(m[1], ":$1")
			routes[strings.ToUpper(m[2])+" "+path] = name
		}
	}

	return routes
}

func TestHandlerDocs_MatchRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)

	// stores are never called, only route shapes matter here
	router := gin.New()
	router.GET("/health", health.Handler(nil))
	v1 := router.Group("/api/v1")
	v1.GET("/ping", health.PingHandler)
	generate.RegisterRoutes(v1, verifier, nil, nil)
	dictionary.RegisterRoutes(v1, verifier, nil, nil)
	quizzes.RegisterRoutes(v1, verifier, nil)
	results.RegisterRoutes(v1, verifier, nil)
	words.RegisterRoutes(v1, verifier, nil)
	users.RegisterRoutes(v1, verifier, nil)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	documented := documentedRoutes(t)

	for route, handler := range documented {
		assert.True(t, registered[route], "%s documents %s which is not registered", handler, route)
	}
	for route := range registered {
		_, ok := documented[route]
		assert.True(t, ok, "%s is registered but undocumented", route)
	}
}
