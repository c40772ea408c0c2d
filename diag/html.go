package diag

import (
	"fmt"

	md "github.com/russross/blackfriday/v2"
)

// RenderHTML renders the snapshot's Markdown table to HTML using
// blackfriday, wrapped in a minimal page shell.
func (s *Snapshot) RenderHTML() string {
	body := md.Run([]byte(s.RenderMarkdown()))
	return fmt.Sprintf(`<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head><title>%s</title></head>
  <body>
%s
  </body>
</html>
`, s.SpaceName, body)
}
