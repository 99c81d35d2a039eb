package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocal(t *testing.T) {
	const page = "http://localhost:8080/index.html"

	tests := []struct {
		ref  string
		want bool
	}{
		{"./style.css", true},
		{"../lib/app.js", true},
		{"/style.css", true},
		{"/", true},
		{"//cdn.example.com/lib.js", false},
		{"style.css", true},
		{"js/app.js?v=2", true},
		{"http://localhost:8080/app.js", true},
		{"http://localhost:9090/app.js", false},
		{"https://localhost:8080/app.js", false},
		{"https://cdn.example.com/app.js", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLocal(tt.ref, page), "ref %q", tt.ref)
	}
}

func TestResolve(t *testing.T) {
	abs, err := Resolve("css/site.css", "http://localhost:8080/docs/index.html")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/docs/css/site.css", abs)

	abs, err = Resolve("/app.js", "http://localhost:8080/docs/index.html")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/app.js", abs)
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", Origin("http://localhost:8080/a/b?c"))
	assert.Equal(t, "", Origin("file:///tmp/index.html"))
}
