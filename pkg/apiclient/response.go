package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// IsJSON reports whether Body is a syntactically valid JSON document.
// The Content-Type header is not consulted; servers often omit it on
// error responses.
func (r *Response) IsJSON() bool {
	body := bytes.TrimSpace(r.Body)
	return len(body) > 0 && json.Valid(body)
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// Decode unmarshals Body into v. A body that is not JSON yields ErrNotJSON;
// JSON that does not fit v yields ErrDecode.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return ErrNotJSON
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
