// Package jobboard embeds the browser templates and static files.
package jobboard

import "embed"

// In dev mode both trees are read from disk instead so edits show up without
// a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
