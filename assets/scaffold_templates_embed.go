// Where: cli/assets/scaffold_templates_embed.go
// What: Embed function scaffold templates for the CLI renderer.
// Why: Keep boilerplate files as editable template assets instead of inline literals.
package assets

import "embed"

//go:embed scaffold-templates/*.tmpl
var ScaffoldTemplatesFS embed.FS
