// Package csp builds Content-Security-Policy header values.
//
// Example:
//
//	policy := csp.NewBuilder().
//	    DefaultSrc("'none'").
//	    FrameAncestors("'none'").
//	    Build()
//	// "default-src 'none'; frame-ancestors 'none'"
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the output order so header values are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Builder accumulates CSP directives. It is not safe for concurrent use;
// call Build once and share the resulting string.
type Builder struct {
	directives map[string][]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

func (b *Builder) set(directive string, sources []string) *Builder {
	b.directives[directive] = append([]string(nil), sources...)
	return b
}

// DefaultSrc sets default-src, the fallback for the other fetch directives.
func (b *Builder) DefaultSrc(sources ...string) *Builder { return b.set("default-src", sources) }

// ScriptSrc sets script-src.
func (b *Builder) ScriptSrc(sources ...string) *Builder { return b.set("script-src", sources) }

// StyleSrc sets style-src.
func (b *Builder) StyleSrc(sources ...string) *Builder { return b.set("style-src", sources) }

// ImgSrc sets img-src.
func (b *Builder) ImgSrc(sources ...string) *Builder { return b.set("img-src", sources) }

// FontSrc sets font-src.
func (b *Builder) FontSrc(sources ...string) *Builder { return b.set("font-src", sources) }

// ConnectSrc sets connect-src.
func (b *Builder) ConnectSrc(sources ...string) *Builder { return b.set("connect-src", sources) }

// FrameAncestors sets frame-ancestors.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets form-action.
func (b *Builder) FormAction(sources ...string) *Builder { return b.set("form-action", sources) }

// BaseURI sets base-uri.
func (b *Builder) BaseURI(sources ...string) *Builder { return b.set("base-uri", sources) }

// ObjectSrc sets object-src.
func (b *Builder) ObjectSrc(sources ...string) *Builder { return b.set("object-src", sources) }

// Build returns the header value. Directives without sources are omitted.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.directives))
	for _, d := range directiveOrder {
		if sources := b.directives[d]; len(sources) > 0 {
			parts = append(parts, d+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// StrictPolicy is for JSON endpoints and the static index page, which load
// no scripts, styles or images.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy allows what the bundled Swagger UI needs: inline
// bootstrap script and styles, data: images and same-origin document loading.
func SwaggerUIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}
