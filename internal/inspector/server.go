package inspector

import (
	"fmt"
	"html/template"
	"image"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/s2tools/s2ui/internal/scan"
	"github.com/s2tools/s2ui/internal/session"
	"github.com/s2tools/s2ui/pkg/nineslice"
	"github.com/s2tools/s2ui/pkg/uiscript"
)

// Server serves the inspector pages for one session.
type Server struct {
	session *session.Session
	log     *zap.Logger
	mux     *http.ServeMux
}

// NewServer wires the inspector routes.
func NewServer(s *session.Session, log *zap.Logger) *Server {
	srv := &Server{session: s, log: log, mux: http.NewServeMux()}
	srv.mux.HandleFunc("GET /{$}", srv.handleIndex)
	srv.mux.HandleFunc("GET /script", srv.handleScript)
	srv.mux.HandleFunc("GET /source", srv.handleSource)
	srv.mux.HandleFunc("GET /search", srv.handleSearch)
	srv.mux.HandleFunc("GET /image", srv.handleImage)
	srv.mux.HandleFunc("POST /reload", srv.handleReload)
	return srv
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// scriptKeyFromQuery reads group, instance and checksum parameters.
func scriptKeyFromQuery(r *http.Request) (session.ScriptKey, error) {
	group, err := parseID(r.URL.Query().Get("group"))
	if err != nil {
		return session.ScriptKey{}, fmt.Errorf("group: %w", err)
	}
	instance, err := parseID(r.URL.Query().Get("instance"))
	if err != nil {
		return session.ScriptKey{}, fmt.Errorf("instance: %w", err)
	}
	return session.ScriptKey{
		Key:      scan.ResourceKey{GroupID: group, InstanceID: instance},
		Checksum: scan.Checksum(r.URL.Query().Get("checksum")),
	}, nil
}

func parseID(value string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return uint32(v), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	groups := s.session.Groups()

	view := indexView{Path: s.session.Path(), GroupCount: len(groups)}
	for _, group := range groups {
		gv := groupView{
			GroupID:      fmt.Sprintf("0x%08x", group.Key.GroupID),
			InstanceID:   fmt.Sprintf("0x%08x", group.Key.InstanceID),
			Games:        scan.NameLabel(group.Games(), "game"),
			Packages:     scan.NameLabel(group.Packages(), "package"),
			GamesList:    strings.Join(group.Games(), ", "),
			PackagesList: strings.Join(group.Packages(), ", "),
		}

		var keys []session.ScriptKey
		for _, variant := range group.Variants {
			key := session.ScriptKey{Key: group.Key, Checksum: variant.Checksum}
			keys = append(keys, key)

			vv := variantView{
				Checksum:     string(variant.Checksum),
				Games:        scan.NameLabel(variant.Games, "game"),
				Packages:     scan.NameLabel(variant.Packages, "package"),
				GamesList:    strings.Join(variant.Games, ", "),
				PackagesList: strings.Join(variant.Packages, ", "),
				Latest:       variant.Latest,
				Readable:     variant.Readable(),
			}
			if hints := s.session.Captions(key); len(hints) > 0 {
				vv.Caption = hints[0]
			}
			if vv.Readable {
				vv.URL = keyURL("/script", key)
			}
			gv.Variants = append(gv.Variants, vv)
		}

		gv.Caption = s.session.GroupCaption(keys)
		view.Groups = append(view.Groups, gv)
	}

	s.render(w, indexTemplate, view)
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	key, err := scriptKeyFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	script, ok := s.session.Script(key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	view := scriptView{
		GroupID:    fmt.Sprintf("0x%08x", key.Key.GroupID),
		InstanceID: fmt.Sprintf("0x%08x", key.Key.InstanceID),
		Checksum:   string(key.Checksum),
		SourceURL:  keyURL("/source", key),
	}

	if script.Err != nil {
		view.Error = script.Err.Error()
	}
	if script.Root != nil {
		view.Body = template.HTML(RenderElements(script.Root))
		view.Stylesheet = template.CSS(s.session.Stylesheet())
		view.Elements = s.elementViews(script.Root)
	}

	s.render(w, scriptTemplate, view)
}

// elementViews flattens the element tree for the listing, with expanded
// properties per element.
func (s *Server) elementViews(root *uiscript.Root) []elementView {
	fonts := s.session.Fonts()
	graphics := s.session.Graphics()

	var views []elementView
	var walk func(el *uiscript.Element, depth int)
	walk = func(el *uiscript.Element, depth int) {
		ev := elementView{
			Depth:     depth,
			IID:       el.Attr("iid"),
			Caption:   el.Attr("caption"),
			ElementID: ElementID(el),
		}
		if ev.IID == "" {
			ev.IID = "Unknown"
		}

		if image := el.Attr("image"); image != "" {
			ev.ImageURL = imageIconURL(image, ev.IID == "IGZWinBtn")
			if ev.ImageURL == "" {
				ev.MissingImage = image
			}
		}

		for _, prop := range Properties(el, fonts, graphics) {
			ev.Properties = append(ev.Properties, propertyView(prop))
		}

		views = append(views, ev)
		for _, child := range el.Children {
			walk(child, depth+1)
		}
	}
	for _, el := range root.Children {
		walk(el, 0)
	}
	return views
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	key, err := scriptKeyFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	script, ok := s.session.Script(key)
	if !ok || script.Source == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(script.Source)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	attrib := r.URL.Query().Get("attrib")
	value := r.URL.Query().Get("value")

	view := searchView{Attribute: attrib, Value: value}
	if attrib != "" || value != "" {
		view.Searched = true
		for _, result := range Search(s.session.Scripts(), attrib, value) {
			view.Results = append(view.Results, searchResultView{
				Attribute:  result.Attribute,
				Value:      result.Value,
				GroupID:    fmt.Sprintf("0x%08x", result.Key.Key.GroupID),
				InstanceID: fmt.Sprintf("0x%08x", result.Key.Key.InstanceID),
				URL:        keyURL("/script", result.Key) + "#" + result.ElementID,
			})
		}
	}

	s.render(w, searchTemplate, view)
}

// handleImage serves a graphic as PNG, optionally reconstructed for a
// target size. Missing or undecodable graphics get a placeholder swatch so
// pages render without broken images.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	img, err := s.lookupGraphic(q.Get("group"), q.Get("instance"))
	if err != nil {
		s.log.Debug("serving placeholder", zap.String("url", r.URL.String()), zap.Error(err))
		s.servePNG(w, Placeholder())
		return
	}

	width, _ := strconv.Atoi(q.Get("width"))
	height, _ := strconv.Atoi(q.Get("height"))

	switch q.Get("mode") {
	case "dialog":
		if width > 0 && height > 0 {
			img = nineslice.DialogBackground(img, width, height)
		}
	case "edge":
		if width > 0 && height > 0 {
			img = nineslice.EdgeImage(img, width, height)
		}
	case "button":
		img = ButtonNormalState(img)
	}

	s.servePNG(w, img)
}

func (s *Server) lookupGraphic(groupParam, instanceParam string) (image.Image, error) {
	group, err := parseID(groupParam)
	if err != nil {
		return nil, err
	}
	instance, err := parseID(instanceParam)
	if err != nil {
		return nil, err
	}

	entry, ok := s.session.Graphics().Get(scan.ResourceKey{GroupID: group, InstanceID: instance})
	if !ok {
		return nil, fmt.Errorf("no graphic 0x%08x 0x%08x", group, instance)
	}
	data, err := entry.Data()
	if err != nil {
		return nil, err
	}
	return DecodeGraphic(data)
}

func (s *Server) servePNG(w http.ResponseWriter, img image.Image) {
	data, err := EncodePNG(img)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reload(); err != nil {
		s.log.Error("reload failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// keyURL builds a link to a per-variant endpoint.
func keyURL(path string, key session.ScriptKey) string {
	return fmt.Sprintf("%s?group=0x%08x&instance=0x%08x&checksum=%s",
		path, key.Key.GroupID, key.Key.InstanceID, url.QueryEscape(string(key.Checksum)))
}

// imageIconURL builds the icon link for an element's image attribute, or
// "" when the reference is malformed.
func imageIconURL(imageAttr string, isButton bool) string {
	group, instance, err := uiscript.ParseImageRef(imageAttr)
	if err != nil {
		return ""
	}
	u := fmt.Sprintf("/image?group=0x%08x&instance=0x%08x", group, instance)
	if isButton {
		u += "&mode=button"
	}
	return u
}
