package fieldnotes

import "embed"

// EmbeddedAssets contains static assets shipped with the framework
// (analytics.js beacon).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
