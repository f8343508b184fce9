package httpx

import "net/http"

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithFlash sets a one-shot status message; kind is "success" or "error".
func (b *TemplateDataBuilder) WithFlash(kind, message string) *TemplateDataBuilder {
	if message == "" {
		return b
	}
	b.data["Flash"] = map[string]string{"Kind": kind, "Message": message}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
