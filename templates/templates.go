// Package templates holds the page templates compiled into the binary.
package templates

import "embed"

//go:embed markdown/*.tmpl
var FS embed.FS
