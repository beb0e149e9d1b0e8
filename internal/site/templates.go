package site

// pageShell wraps markdown pages so they go through the same partial and
// navigation pipeline as hand-written HTML pages.
const pageShell = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
  <div data-partial="header"></div>
  <main class="content">
{{.Content}}
  </main>
  <div data-partial="footer"></div>
</body>
</html>
`
