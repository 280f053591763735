package presenter

import (
	"html/template"

	blackfriday "gopkg.in/russross/blackfriday.v2"
)

var Version = "undefined"

const DefaultRevealURL = "https://cdn.jsdelivr.net/npm/reveal.js@4.6.1"

const mardownExtensions = blackfriday.NoIntraEmphasis | blackfriday.Tables | blackfriday.FencedCode |
	blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.BackslashLineBreak

var mainTmpl = `[[define "main" ]][[ template "base" . ]][[ end ]]`

var baseTmpl = `
[[ define "base" ]]<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<meta name="generator" content="presenter [[ .Version ]]">
		<title>[[ .Title ]]</title>
		<link rel="stylesheet" href="[[ .RevealURL ]]/dist/reveal.css">
		<link rel="stylesheet" href="assets/presenter.css">
	</head>
	<body>
		<div class="reveal">
			<div class="slides">
				[[ range .Pages ]]
					[[ template "page" . ]]
				[[ end ]]
			</div>
		</div>
		[[ block "js" . ]]
		<script src="[[ .RevealURL ]]/dist/reveal.js"></script>
		<script src="[[ .RevealURL ]]/plugin/notes/notes.js"></script>
		<script>
			Reveal.initialize({width: [[ .Width ]], height: [[ .Height ]], margin: 0, center: false, plugins: [RevealNotes]});
		</script>
		[[ if .LiveReload ]]<script src="assets/livereload.js"></script>[[ end ]]
		[[ end ]]
	</body>
</html>
[[ end ]]
`

var pageTmpl = `
[[ define "page" ]]
<section id="[[ .ID ]]" class="slide [[ .Layout ]]"[[ with .Background ]] data-background-color="[[ . ]]"[[ end ]] data-has-notes="[[ .HasNotes ]]">
[[ range .Shapes ]][[ . ]]
[[ end ]]
[[ if .HasNotes ]]
<aside class="notes">
[[ .Notes ]]
</aside>
[[ end ]]
</section>
[[ end ]]
`

var runTmpl = `[[ define "run" ]][[ if .Plain ]][[ .Text ]][[ else if .Code ]]<code>[[ .Text ]]</code>[[ else if .Bold ]]<strong>[[ .Text ]]</strong>[[ else if .Italic ]]<em>[[ .Text ]]</em>[[ end ]][[ end ]]`

var textBoxTmpl = `
[[ define "textbox" ]]<div class="box text" style="[[ .Style ]]">
[[ range .Paragraphs ]]<p style="[[ .Style ]]">[[ with .Bullet ]]<span class="bullet">[[ . ]]</span> [[ end ]][[ range .Runs ]][[ template "run" . ]][[ end ]]</p>
[[ end ]]</div>[[ end ]]
`

var codeBoxTmpl = `[[ define "codebox" ]]<pre class="box code" style="[[ .Style ]]"><code>[[ range .Tokens ]]<span style="[[ .Style ]]">[[ .Text ]]</span>[[ end ]]</code></pre>[[ end ]]`

var tableTmpl = `
[[ define "table" ]]<table class="box table" style="[[ .Style ]]">
[[ if .Headers ]]<thead><tr>[[ range .Headers ]]<th style="[[ .Style ]]">[[ range .Runs ]][[ template "run" . ]][[ end ]]</th>[[ end ]]</tr></thead>[[ end ]]
<tbody>
[[ range .Rows ]]<tr>[[ range . ]]<td style="[[ .Style ]]">[[ range .Runs ]][[ template "run" . ]][[ end ]]</td>[[ end ]]</tr>
[[ end ]]</tbody>
</table>[[ end ]]
`

var pictureTmpl = `[[ define "picture" ]]<img class="box picture" src="[[ .Src ]]" alt="[[ .Alt ]]" style="[[ .Style ]]">[[ end ]]`

// DefaultRenderer parses the deck templates. They use [[ ]] delimiters so
// that slide text with {{ }} passes through untouched.
func DefaultRenderer() *template.Template {
	var err error
	tmpl := template.New("main")
	tmpl.Delims("[[", "]]")
	for _, tmplStr := range []string{mainTmpl, baseTmpl, pageTmpl, runTmpl, textBoxTmpl, codeBoxTmpl, tableTmpl, pictureTmpl} {
		tmpl, err = tmpl.Parse(tmplStr)
		if err != nil {
			panic(err)
		}
	}

	return tmpl
}

// renderNotes turns markdown speaker notes into HTML.
func renderNotes(notes string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(notes), blackfriday.WithExtensions(
		mardownExtensions,
	)))
}

// RenderHTML lays out pres on a reveal.js document.
func RenderHTML(pres *Presentation, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = pres.Name
	}
	canvas := NewHTMLCanvas(opts)
	if err := NewRenderer(pres).Render(pres, canvas); err != nil {
		return nil, err
	}
	return canvas.Bytes()
}
