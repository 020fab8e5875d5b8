package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGraph   = "http://example.org/graph"
	testSubject = "http://example.org/s"
)

func newSPARQLServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		body := `{"head":{"vars":["s","p","o"]},"results":{"bindings":[]}}`
		if strings.Contains(r.PostForm.Get("query"), "<"+testSubject+">") {
			body = `{"head":{"vars":["s","p","o"]},"results":{"bindings":[` +
				`{"s":{"type":"uri","value":"` + testSubject + `"},` +
				`"p":{"type":"uri","value":"http://purl.org/dc/terms/title"},` +
				`"o":{"type":"literal","value":"Parkeervergunning","xml:lang":"nl"}}]}}`
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range newRootCmd().Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"process", "fetch", "version"})
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "servicecatalog "+version+"\n", stdout)
}

func TestFetchCmd(t *testing.T) {
	server := newSPARQLServer(t)
	t.Setenv("SERVICECATALOG_SPARQL_ENDPOINT", server.URL)

	t.Run("turtle", func(t *testing.T) {
		stdout, stderr, err := execute(t, "fetch", "--graph", testGraph, "--root", testSubject, "--stats")
		require.NoError(t, err)
		assert.Contains(t, stdout, "@prefix dct: <http://purl.org/dc/terms/> .")
		assert.Contains(t, stdout, `dct:title "Parkeervergunning"@nl`)
		assert.Contains(t, stderr, "Fetch Report:")
	})

	t.Run("nquads", func(t *testing.T) {
		stdout, _, err := execute(t, "fetch", "-g", testGraph, "-r", testSubject, "-f", "nquads")
		require.NoError(t, err)
		assert.Equal(t,
			`<http://example.org/s> <http://purl.org/dc/terms/title> "Parkeervergunning"@nl <http://example.org/graph> .`+"\n",
			stdout)
	})
}

func TestFetchCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing graph", []string{"fetch", "--root", testSubject}, "--graph is required"},
		{"missing root", []string{"fetch", "--graph", testGraph}, "--root is required"},
		{"unknown profile", []string{"fetch", "-g", testGraph, "-r", testSubject, "-p", "law"}, "unknown profile"},
		{"unknown format", []string{"fetch", "-g", testGraph, "-r", testSubject, "-f", "rdfxml"}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProcessCmd_UnknownSource(t *testing.T) {
	_, _, err := execute(t, "process", "laws")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "laws"`)
}
