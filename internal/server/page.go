package server

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yosssi/gohtml"

	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
)

//go:embed templates/index.html.tmpl
var pageTemplate string

type pageData struct {
	Layout  dashboard.Layout
	Version string
}

func parsePage() (*template.Template, error) {
	return template.New("index").Parse(pageTemplate)
}

func (s *Server) renderPage() ([]byte, error) {
	var buf bytes.Buffer
	data := pageData{Layout: s.dash.Layout(), Version: s.version}
	if err := s.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	if s.prettyHTML {
		return gohtml.FormatBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}
