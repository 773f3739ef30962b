package inspector

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

type indexView struct {
	Path       string
	GroupCount int
	Groups     []groupView
}

type groupView struct {
	GroupID    string
	InstanceID string
	Caption    string
	Games      string
	Packages   string

	// Full sorted contributor lists, shown as tooltips behind the
	// collapsed "N games"/"N packages" labels.
	GamesList    string
	PackagesList string

	Variants []variantView
}

type variantView struct {
	Checksum string
	Caption  string
	Games    string
	Packages string

	GamesList    string
	PackagesList string

	Latest   bool
	Readable bool
	URL      string
}

type scriptView struct {
	GroupID    string
	InstanceID string
	Checksum   string
	SourceURL  string
	Error      string
	Body       template.HTML
	Stylesheet template.CSS
	Elements   []elementView
}

type elementView struct {
	Depth        int
	IID          string
	Caption      string
	ElementID    string
	ImageURL     string
	MissingImage string
	Properties   []propView
}

type propView struct {
	Name           string
	Value          string
	Duplicate      bool
	MissingGraphic bool
	Swatch         string
	Children       []propView
}

type searchView struct {
	Attribute string
	Value     string
	Searched  bool
	Results   []searchResultView
}

type searchResultView struct {
	Attribute  string
	Value      string
	GroupID    string
	InstanceID string
	URL        string
}

func propertyView(p Property) propView {
	pv := propView{
		Name:           p.Name,
		Value:          p.Value,
		Duplicate:      p.Duplicate,
		MissingGraphic: p.MissingGraphic,
		Swatch:         p.Swatch,
	}
	for _, child := range p.Children {
		pv.Children = append(pv.Children, propertyView(child))
	}
	return pv
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, view any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, view); err != nil {
		s.log.Error("rendering page", zap.String("template", tmpl.Name()), zap.Error(err))
	}
}

const baseCSS = `
body { font-family: sans-serif; margin: 1em 2em; background: #1e1e1e; color: #ddd; }
a { color: #6cf; text-decoration: none; }
a:hover { text-decoration: underline; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.25em 0.75em; border-bottom: 1px solid #333; }
tr.variant td { color: #aaa; }
tr.variant td:first-child { padding-left: 2.5em; }
.latest { color: #4dd; }
.sentinel { color: #c66; }
.dup { color: #cc4; }
.missing { color: #c66; }
.swatch { display: inline-block; width: 0.9em; height: 0.9em; border: 1px solid #555; vertical-align: middle; }
.element-row { margin: 0; padding: 0.1em 0; }
pre { background: #111; padding: 1em; overflow: auto; }
#render { position: relative; background: #333; min-height: 400px; overflow: hidden; }
#render .LEGACY { position: absolute; }
`

const renderJS = `
document.querySelectorAll("#render .LEGACY").forEach(function (el) {
	var area = el.getAttribute("area");
	if (area) {
		var p = area.replace(/[()]/g, "").split(",").map(Number);
		el.style.left = p[0] + "px";
		el.style.top = p[1] + "px";
		el.style.width = (p[2] - p[0]) + "px";
		el.style.height = (p[3] - p[1]) + "px";
	}
	var image = el.getAttribute("image");
	if (image) {
		var m = image.replace(/[{}]/g, "").split(",");
		var edge = el.getAttribute("edgeimage") === "yes" || el.getAttribute("blttype") === "edge";
		var src = "/image?group=" + m[0] + "&instance=" + m[1];
		if (edge) {
			src += "&mode=dialog&width=" + el.clientWidth + "&height=" + el.clientHeight;
		}
		el.style.backgroundImage = "url('" + src + "')";
	}
	el.addEventListener("click", function (ev) {
		ev.stopPropagation();
		location.hash = el.id;
	});
});
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>S2UI Inspector</title>
<style>` + baseCSS + `</style>
</head>
<body>
<h1>S2UI Inspector</h1>
<p>{{.Path}} &mdash; {{.GroupCount}} UI scripts
<form method="post" action="/reload" style="display:inline"><button>Reload</button></form>
<a href="/search">Find references</a></p>
<table>
<tr><th>Group ID</th><th>Instance ID</th><th>Caption</th><th>Game</th><th>Package</th></tr>
{{range .Groups}}
<tr><td>{{.GroupID}}</td><td>{{.InstanceID}}</td><td>{{.Caption}}</td><td title="{{.GamesList}}">{{.Games}}</td><td title="{{.PackagesList}}">{{.Packages}}</td></tr>
{{range .Variants}}
<tr class="variant">
<td>{{if .Readable}}<a href="{{.URL}}">{{printf "%.12s" .Checksum}}</a>{{else}}<span class="sentinel">{{.Checksum}}</span>{{end}}</td>
<td></td>
<td>{{.Caption}}</td>
<td title="{{.GamesList}}">{{.Games}}{{if .Latest}} <span class="latest">/ Latest</span>{{end}}</td>
<td title="{{.PackagesList}}">{{.Packages}}</td>
</tr>
{{end}}
{{end}}
</table>
</body>
</html>
`))

var scriptTemplate = template.Must(template.New("script").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.GroupID}} {{.InstanceID}} &mdash; S2UI Inspector</title>
<style>` + baseCSS + `</style>
<style>{{.Stylesheet}}</style>
</head>
<body>
<p><a href="/">&larr; All scripts</a> &mdash; <a href="{{.SourceURL}}">Original code</a></p>
<h1>{{.GroupID}} {{.InstanceID}}</h1>
<p>Variant {{printf "%.12s" .Checksum}}</p>
{{if .Error}}<p class="missing">{{.Error}}</p>{{end}}
<div id="render">{{.Body}}</div>
<h2>Elements</h2>
{{range .Elements}}
<details class="element-row" style="margin-left: {{.Depth}}em" id="el-{{.ElementID}}">
<summary>
{{if .ImageURL}}<img src="{{.ImageURL}}" width="16" height="16" alt="">{{end}}
{{.IID}}{{if .Caption}} &mdash; {{.Caption}}{{end}}
{{if .MissingImage}}<span class="missing">Missing bitmap: {{.MissingImage}}</span>{{end}}
</summary>
<table>
{{range .Properties}}
<tr{{if .Duplicate}} class="dup"{{end}}>
<td>{{.Name}}</td>
<td>{{if .Swatch}}<span class="swatch" style="background:{{.Swatch}}"></span> {{end}}{{.Value}}{{if .MissingGraphic}} <span class="missing">Missing bitmap</span>{{end}}</td>
</tr>
{{range .Children}}
<tr><td style="padding-left:2.5em">{{.Name}}</td><td>{{.Value}}</td></tr>
{{end}}
{{end}}
</table>
</details>
{{end}}
<script>` + renderJS + `</script>
</body>
</html>
`))

var searchTemplate = template.Must(template.New("search").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Find References &mdash; S2UI Inspector</title>
<style>` + baseCSS + `</style>
</head>
<body>
<p><a href="/">&larr; All scripts</a></p>
<h1>Find References</h1>
<form method="get" action="/search">
<input name="attrib" placeholder="Find attribute..." value="{{.Attribute}}">
<input name="value" placeholder="Find value..." value="{{.Value}}">
<button>Search</button>
</form>
{{if .Searched}}
{{if .Results}}
<table>
<tr><th>Attribute</th><th>Value</th><th>Group ID</th><th>Instance ID</th></tr>
{{range .Results}}
<tr><td><a href="{{.URL}}">{{.Attribute}}</a></td><td>{{.Value}}</td><td>{{.GroupID}}</td><td>{{.InstanceID}}</td></tr>
{{end}}
</table>
{{else}}
<p>No results found.</p>
{{end}}
{{end}}
</body>
</html>
`))
