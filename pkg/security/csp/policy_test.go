package csp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{
			name:  "empty",
			build: NewBuilder,
			want:  "",
		},
		{
			name: "stable order regardless of call order",
			build: func() *Builder {
				return NewBuilder().FrameAncestors("'none'").DefaultSrc("'self'").ImgSrc("'self'", "data:")
			},
			want: "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'",
		},
		{
			name: "empty directive omitted",
			build: func() *Builder {
				return NewBuilder().DefaultSrc("'self'").ScriptSrc()
			},
			want: "default-src 'self'",
		},
		{
			name: "later call replaces sources",
			build: func() *Builder {
				return NewBuilder().DefaultSrc("'self'").DefaultSrc("'none'")
			},
			want: "default-src 'none'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().Build())
		})
	}
}

func TestBuilder_CopiesSources(t *testing.T) {
	sources := []string{"'self'"}
	b := NewBuilder().DefaultSrc(sources...)
	sources[0] = "https://evil.example"
	assert.Equal(t, "default-src 'self'", b.Build())
}

func TestPresets(t *testing.T) {
	strict := StrictPolicy().Build()
	assert.True(t, strings.HasPrefix(strict, "default-src 'none'"))
	assert.Contains(t, strict, "frame-ancestors 'none'")
	assert.NotContains(t, strict, "unsafe-inline")

	swagger := SwaggerUIPolicy().Build()
	assert.Contains(t, swagger, "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, swagger, "object-src 'none'")
}
