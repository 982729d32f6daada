package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/sluice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_CopiesModel(t *testing.T) {
	model := map[string]any{"count": 1}
	act := domain.Render("index", model)

	// Mutating the caller's map after construction must not leak in.
	model["count"] = 99
	assert.Equal(t, 1, act.Model["count"])
	assert.Equal(t, domain.KindRender, act.Kind)
	assert.Equal(t, "index", act.View)
}

func TestRespondErrors_CopiesFields(t *testing.T) {
	fields := []domain.FieldError{{Field: "title", Message: "blank"}}
	act := domain.RespondErrors(fields, "edit")

	fields[0].Field = "mutated"
	assert.Equal(t, "title", act.Errors[0].Field)
	assert.Equal(t, domain.KindRespondErrors, act.Kind)
}

func TestValidationError_ErrorsAs(t *testing.T) {
	verr := domain.NewValidationError(
		domain.FieldError{Field: "id", Message: "must not be blank"},
		domain.FieldError{Field: "title", Message: "must not be blank"},
	)
	wrapped := fmt.Errorf("saving book: %w", verr)

	var target *domain.ValidationError
	require.True(t, errors.As(wrapped, &target))
	assert.Len(t, target.Fields, 2)
	assert.Contains(t, verr.Error(), "id: must not be blank")
}

func TestExchangeContext_SnapshotIsImmutable(t *testing.T) {
	params := map[string]string{"id": "42"}
	body := []byte(`{"id":"42"}`)
	snap := domain.NewExchangeContext("GET", "/books/42", params, nil, nil, body)

	params["id"] = "mutated"
	body[0] = 'X'

	assert.Equal(t, "42", snap.Param("id"))
	assert.Equal(t, byte('{'), snap.Body()[0])
	assert.Equal(t, "GET", snap.Method())
	assert.Equal(t, "/books/42", snap.Path())
}

func TestExchangeContext_Bind(t *testing.T) {
	snap := domain.NewExchangeContext("GET", "/books",
		map[string]string{"id": "42"},
		map[string]string{"page": "3", "id": "ignored"},
		nil, nil)

	var dst struct {
		ID   string `param:"id"`
		Page int    `param:"page"`
	}
	require.NoError(t, snap.Bind(&dst))
	assert.Equal(t, "42", dst.ID, "route params win over query params")
	assert.Equal(t, 3, dst.Page, "weak typing parses numeric strings")
}

func TestExchangeContext_DecodeJSON(t *testing.T) {
	snap := domain.NewExchangeContext("POST", "/books", nil, nil, nil, []byte(`{"title":"Dune"}`))

	var dst struct {
		Title string `json:"title"`
	}
	require.NoError(t, snap.DecodeJSON(&dst))
	assert.Equal(t, "Dune", dst.Title)

	empty := domain.NewExchangeContext("POST", "/books", nil, nil, nil, nil)
	assert.ErrorIs(t, empty.DecodeJSON(&dst), domain.ErrEmptyResult)
}
