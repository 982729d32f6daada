package domain

// Kind discriminates the Action variants.
type Kind string

const (
	// KindRender asks the host to render a named view with a model.
	KindRender Kind = "RENDER"

	// KindRespond asks the host to write a payload with a status code.
	KindRespond Kind = "RESPOND"

	// KindRespondErrors asks the host to report structured field errors,
	// optionally through a named view.
	KindRespondErrors Kind = "RESPOND_ERRORS"
)

// Action is an immutable description of the effect to apply to an HTTP
// exchange. Exactly one Action is applied per exchange; the dispatcher
// enforces this, the Action itself is just data.
//
// Only the fields relevant to the Kind are populated. Use the Render,
// Respond and RespondErrors constructors instead of struct literals.
type Action struct {
	Kind Kind

	// Render
	View  string
	Model map[string]any

	// Respond
	Payload any
	Status  int

	// RespondErrors
	Errors []FieldError
}

// Render builds an action that renders the named view with the given model.
// The model map is copied so later mutation by the caller cannot leak into
// an already-dispatched action.
func Render(view string, model map[string]any) Action {
	var copied map[string]any
	if model != nil {
		copied = make(map[string]any, len(model))
		for k, v := range model {
			copied[k] = v
		}
	}
	return Action{Kind: KindRender, View: view, Model: copied}
}

// Respond builds an action that writes payload with the given status code.
// A nil payload writes no body (status only).
func Respond(payload any, status int) Action {
	return Action{Kind: KindRespond, Payload: payload, Status: status}
}

// RespondErrors builds an action that reports field errors. view may be
// empty, in which case the applier falls back to its structured error
// representation (e.g. a JSON errors object).
func RespondErrors(errs []FieldError, view string) Action {
	copied := make([]FieldError, len(errs))
	copy(copied, errs)
	return Action{Kind: KindRespondErrors, Errors: copied, View: view}
}
