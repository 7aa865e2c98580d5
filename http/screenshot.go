package http

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/profilepeek/profilepeek"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// snapshotView is the data rendered into the snapshot template.
type snapshotView struct {
	URL   string
	Title string
	// Image is a data: URI; typed so the template engine accepts it in
	// an src attribute.
	Image template.URL
	Links []profilepeek.Link
}

func (s *Server) handleScreenshotForm(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, http.StatusOK, "form.html", nil)
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	release, err := s.admit()
	if err != nil {
		s.renderError(w, err)
		return
	}
	defer release()

	url, err := profilepeek.NormalizeURL(r.FormValue("url"))
	if err != nil {
		s.renderError(w, err)
		return
	}

	if s.Screenshots == nil {
		s.renderError(w, profilepeek.Errorf(profilepeek.EINTERNAL, "screenshot capture is not configured"))
		return
	}

	snap, err := s.Screenshots.Capture(r.Context(), url)
	if err != nil {
		s.renderError(w, err)
		return
	}

	var links []profilepeek.Link
	if s.Links != nil {
		// Link extraction is best effort; a broken page still gets its
		// screenshot rendered.
		links, _ = s.Links.ExtractLinks(snap.HTML, snap.URL)
	}

	s.renderHTML(w, http.StatusOK, "snapshot.html", snapshotView{
		URL:   snap.URL,
		Title: snap.Title,
		Image: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(snap.PNG)),
		Links: links,
	})
}

// renderError renders the error page with the message interpolated,
// mapped to the same status the JSON endpoints would use.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	code := profilepeek.ErrorCode(err)
	if code == profilepeek.EINTERNAL {
		s.logger().Error("screenshot failed", "error", err)
	}
	s.renderHTML(w, errorStatus(code), "error.html", map[string]string{
		"Message": profilepeek.ErrorMessage(err),
	})
}

func (s *Server) renderHTML(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger().Error("rendering template", "template", name, "error", err)
	}
}
