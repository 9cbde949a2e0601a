package offload

import (
	"fmt"
	"html"
	"io"
)

// RenderGeneratorMetaTag writes the generator meta tag naming the plugin slug
// and version.
func RenderGeneratorMetaTag(w io.Writer) {
	fmt.Fprintf(w, "<meta name=\"generator\" content=\"%s\">\n", html.EscapeString(Handle+" "+Version))
}
