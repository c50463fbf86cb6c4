package httputil

import (
	"encoding/json"
	"net/http"
)

// ProblemTypeBase prefixes the code of every problem document to form its
// type URI.
const ProblemTypeBase = "urn:casting:problem:"

// Codes used for problems that do not come from the authorization chain.
const (
	CodeBadRequest = "bad_request"
	CodeValidation = "validation_failed"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

// RespondJSON writes a JSON response with the given status code. The body is
// marshaled before any header is written so an encoding failure still
// produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		WriteProblem(w, NewProblem(http.StatusInternalServerError, CodeInternal, "failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// Problem is an RFC 7807 problem document. Code and Description render as
// top-level members next to the standard ones, along with "success": false.
type Problem struct {
	Type        string
	Title       string
	Status      int
	Detail      string
	Instance    string
	Code        string
	Description string
	Extra       map[string]interface{}
}

// NewProblem builds a problem whose type URI is derived from code.
func NewProblem(status int, code, detail string) Problem {
	return Problem{
		Type:   ProblemTypeBase + code,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

// With returns a copy of p carrying one more top-level member.
func (p Problem) With(key string, value interface{}) Problem {
	extra := make(map[string]interface{}, len(p.Extra)+1)
	for k, v := range p.Extra {
		extra[k] = v
	}
	extra[key] = value
	p.Extra = extra
	return p
}

// MarshalJSON flattens Extra into the top level. Standard members win over
// extras of the same name.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+8)
	for k, v := range p.Extra {
		m[k] = v
	}

	m["success"] = false
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	m["code"] = p.Code
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	if p.Description != "" {
		m["description"] = p.Description
	}

	return json.Marshal(m)
}

// WriteProblem writes p as application/problem+json.
func WriteProblem(w http.ResponseWriter, p Problem) {
	payload, err := json.Marshal(p)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	w.Write(payload)
}

// RespondProblem writes a problem for r, using the request path as instance
// and attaching the request ID when one was assigned.
func RespondProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Instance == "" {
		p.Instance = r.URL.Path
	}
	if id := GetRequestID(r); id != "" {
		p = p.With("request_id", id)
	}
	WriteProblem(w, p)
}
