package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ExchangeContext is an immutable snapshot of request-derived data,
// captured synchronously before any asynchronous transformation begins.
// Producer stages run on worker goroutines with no access to the original
// request, so everything they need must be copied in here up front.
//
// All maps are copied at construction; the snapshot is safe to share
// read-only across goroutines.
type ExchangeContext struct {
	method string
	path   string
	params map[string]string
	query  map[string]string
	header map[string]string
	body   []byte
}

// NewExchangeContext builds a snapshot. The maps and body are copied.
func NewExchangeContext(method, path string, params, query, header map[string]string, body []byte) ExchangeContext {
	return ExchangeContext{
		method: method,
		path:   path,
		params: copyMap(params),
		query:  copyMap(query),
		header: copyMap(header),
		body:   append([]byte(nil), body...),
	}
}

// Method returns the HTTP method of the originating request.
func (c ExchangeContext) Method() string { return c.method }

// Path returns the request path.
func (c ExchangeContext) Path() string { return c.path }

// Param returns a route parameter (e.g. the {id} segment), or "".
func (c ExchangeContext) Param(name string) string { return c.params[name] }

// Query returns the first value of a query parameter, or "".
func (c ExchangeContext) Query(name string) string { return c.query[name] }

// Header returns a request header value, or "".
func (c ExchangeContext) Header(name string) string { return c.header[name] }

// Body returns a copy of the request body bytes.
func (c ExchangeContext) Body() []byte { return append([]byte(nil), c.body...) }

// DecodeJSON unmarshals the request body into dst.
func (c ExchangeContext) DecodeJSON(dst any) error {
	if len(c.body) == 0 {
		return fmt.Errorf("decode body: %w", ErrEmptyResult)
	}
	if err := json.Unmarshal(c.body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// Bind decodes route and query parameters into dst using weakly-typed
// mapstructure decoding, so numeric fields accept their string form.
// Route parameters win over query parameters on key collision.
func (c ExchangeContext) Bind(dst any) error {
	merged := make(map[string]any, len(c.params)+len(c.query))
	for k, v := range c.query {
		merged[k] = v
	}
	for k, v := range c.params {
		merged[k] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "param",
	})
	if err != nil {
		return fmt.Errorf("bind params: %w", err)
	}
	if err := dec.Decode(merged); err != nil {
		return fmt.Errorf("bind params: %w", err)
	}
	return nil
}

func copyMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
