package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
)

// responseApplier writes a response action to the ResponseWriter. The
// dispatcher guarantees at most one Apply per exchange, so no internal
// guard is needed here.
type responseApplier struct {
	w        http.ResponseWriter
	renderer ports.Renderer
}

var _ ports.Applier = (*responseApplier)(nil)

func (a *responseApplier) Apply(ctx context.Context, act domain.Action) error {
	switch act.Kind {
	case domain.KindRespond:
		return a.respond(act)
	case domain.KindRender:
		return a.render(act)
	case domain.KindRespondErrors:
		return a.respondErrors(act)
	default:
		a.w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("unknown action kind %q", act.Kind)
	}
}

func (a *responseApplier) respond(act domain.Action) error {
	if act.Payload == nil {
		a.w.WriteHeader(act.Status)
		return nil
	}
	a.w.Header().Set("Content-Type", "application/json")
	a.w.WriteHeader(act.Status)
	if err := json.NewEncoder(a.w).Encode(act.Payload); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

func (a *responseApplier) render(act domain.Action) error {
	if a.renderer == nil {
		a.w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("render action for view %q but no renderer configured", act.View)
	}
	a.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	a.w.WriteHeader(http.StatusOK)
	return a.renderer.Render(a.w, act.View, act.Model)
}

func (a *responseApplier) respondErrors(act domain.Action) error {
	if act.View != "" && a.renderer != nil {
		a.w.Header().Set("Content-Type", "text/html; charset=utf-8")
		a.w.WriteHeader(http.StatusUnprocessableEntity)
		return a.renderer.Render(a.w, act.View, map[string]any{"errors": act.Errors})
	}
	a.w.Header().Set("Content-Type", "application/json")
	a.w.WriteHeader(http.StatusUnprocessableEntity)
	if err := json.NewEncoder(a.w).Encode(map[string]any{"errors": act.Errors}); err != nil {
		return fmt.Errorf("encode errors: %w", err)
	}
	return nil
}

// TemplateRenderer implements ports.Renderer over html/template.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer wraps a parsed template set; views are resolved by
// template name.
func NewTemplateRenderer(tmpl *template.Template) *TemplateRenderer {
	return &TemplateRenderer{tmpl: tmpl}
}

var _ ports.Renderer = (*TemplateRenderer)(nil)

// Render executes the named template with the model.
func (t *TemplateRenderer) Render(w io.Writer, view string, model map[string]any) error {
	if err := t.tmpl.ExecuteTemplate(w, view, model); err != nil {
		return fmt.Errorf("render view %q: %w", view, err)
	}
	return nil
}
