// Package scaffold provides embedded template files for the fieldnotes CLI.
package scaffold

import "embed"

// Templates contains the post scaffold used by `fieldnotes new`.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
