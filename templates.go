package rankpredict

import (
	"io/fs"

	"github.com/goliatone/go-rankpredict/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
