package web

import "html/template"

// pageData feeds the single page template. Exactly one of Listing, Found or
// NotFound drives the body.
type pageData struct {
	Listing  bool
	Names    []string
	Found    bool
	Label    string
	Before   string
	Match    string
	After    string
	NotFound bool
	Failed   bool

	InputSize      int
	InputMaxLength int
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">
<html>
  <head>
    <meta http-equiv="content-type" content="text/html; charset=UTF-8">
    <title>Apache License search</title>
    <style type="text/css">
      .h {
       background-color:#FF0;
       font-weight:bold;
      }
    </style>
  </head>

  <body>
    <div>
{{- if .Listing}}
<h1>Open Source License Search</h1>You can search through: <ul>{{range .Names}}<li>{{.}}</li>{{end}}</ul><form method="get">Search: <input name="q" type="text" size="{{.InputSize}}" maxlength="{{.InputMaxLength}}"><input type="submit" value=" GO! "></form>
{{- else if .Found}}
<h1>{{.Label}}</h1><pre>{{.Before}}<span class="h">{{.Match}}</span>{{.After}}</pre>
{{- else if .NotFound}}
<h1>Error: could not find anything.</h1>
{{- else if .Failed}}
<h1>Error: the license texts are currently unavailable.</h1>
{{- end}}
    </div>
  </body>
</html>
`
