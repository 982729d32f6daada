package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
	"github.com/aretw0/sluice/pkg/producer"
)

const bookPrefix = "books:"

// Book is the demo catalog record.
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// bookController builds the controller actions over a document source.
// The source is injected explicitly; actions only assemble producer
// chains, all IO runs at subscription time.
type bookController struct {
	books ports.DocumentSource
}

// getBook handles GET /books/{id}: fetch -> map to Respond(200). A
// missing book completes empty and the dispatcher answers with its
// default action (404).
func (c *bookController) getBook(req domain.ExchangeContext) producer.Producer[domain.Action] {
	doc := c.books.Get(bookPrefix + req.Param("id"))
	return producer.Map(doc, func(b []byte) domain.Action {
		return domain.Respond(json.RawMessage(b), http.StatusOK)
	})
}

// listBooks handles GET /books: zip the page with the total count into a
// single payload. Both reads run concurrently.
func (c *bookController) listBooks(req domain.ExchangeContext) producer.Producer[domain.Action] {
	items := producer.Map(c.books.List(bookPrefix), decodeBooks)
	page := sluice.Combine(items, c.books.Count(bookPrefix))
	return producer.Map(page, func(p domain.Page[Book]) domain.Action {
		return domain.Respond(p, http.StatusOK)
	})
}

// createBook handles POST /books. Validation failures surface as a
// ValidationError, which the dispatcher converts into a 422 with
// structured field errors.
func (c *bookController) createBook(req domain.ExchangeContext) producer.Producer[domain.Action] {
	var book Book
	if err := req.DecodeJSON(&book); err != nil {
		return producer.Error[domain.Action](domain.NewValidationError(
			domain.FieldError{Field: "body", Message: "must be a JSON book object"},
		))
	}
	if err := validateBook(book); err != nil {
		return producer.Error[domain.Action](err)
	}

	return producer.Func[domain.Action](func(ctx context.Context) (domain.Action, bool, error) {
		doc, err := json.Marshal(book)
		if err != nil {
			return domain.Action{}, false, err
		}
		if err := c.books.Put(ctx, bookPrefix+book.ID, doc); err != nil {
			return domain.Action{}, false, err
		}
		return domain.Respond(book, http.StatusCreated), true, nil
	})
}

func validateBook(b Book) error {
	var fields []domain.FieldError
	if strings.TrimSpace(b.ID) == "" {
		fields = append(fields, domain.FieldError{Field: "id", Message: "must not be blank"})
	}
	if strings.TrimSpace(b.Title) == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "must not be blank"})
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func decodeBooks(docs [][]byte) []Book {
	books := make([]Book, 0, len(docs))
	for _, doc := range docs {
		var b Book
		if err := json.Unmarshal(doc, &b); err == nil {
			books = append(books, b)
		}
	}
	return books
}
