package apiclient

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	json "github.com/json-iterator/go"

	"contact-list-e2e/internal/models"
)

// Response is a completed HTTP exchange.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Kind classifies a response body.
type Kind int

const (
	KindEmpty Kind = iota
	KindJSON
	KindText
	// KindInvalid is a body announced as JSON that does not parse.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindInvalid:
		return "invalid"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Body is the decoded form of a response body. Value holds the parsed JSON
// for KindJSON; Text always holds the raw body.
type Body struct {
	Kind  Kind
	Value any
	Text  string
	Err   error
}

// Decode parses the body without failing: the result says what was received.
func (r *Response) Decode() Body {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return Body{Kind: KindEmpty}
	}
	text := string(r.Body)

	// Bare scalars only count as JSON when the server says so.
	if !r.isJSON() && trimmed[0] != '{' && trimmed[0] != '[' {
		return Body{Kind: KindText, Text: text}
	}

	var v any
	err := json.Unmarshal(trimmed, &v)
	switch {
	case err == nil:
		return Body{Kind: KindJSON, Value: v, Text: text}
	case r.isJSON():
		return Body{Kind: KindInvalid, Text: text, Err: err}
	default:
		return Body{Kind: KindText, Text: text}
	}
}

func (r *Response) isJSON() bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}

// Into decodes a JSON body into v.
func (r *Response) Into(v any) error {
	b := r.Decode()
	switch b.Kind {
	case KindJSON:
		if err := json.Unmarshal(bytes.TrimSpace(r.Body), v); err != nil {
			return fmt.Errorf("decode %d response: %w", r.Status, err)
		}
		return nil
	case KindInvalid:
		return fmt.Errorf("decode %d response: %w", r.Status, b.Err)
	default:
		return fmt.Errorf("decode %d response: %w", r.Status, errNotJSON(b.Kind))
	}
}

// Message returns the "message" field of an error body, or "".
func (r *Response) Message() string {
	var e models.ErrorResponse
	if err := r.Into(&e); err != nil {
		return ""
	}
	return e.Message
}

var ErrNotJSON = errors.New("body is not JSON")

func errNotJSON(k Kind) error {
	return fmt.Errorf("%w: %s body", ErrNotJSON, k)
}
