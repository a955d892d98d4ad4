// Package httpapi holds the JSON plumbing shared by the users and notes
// services. Error bodies use the {"detail": ...} shape the board client
// decodes.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is one entry of a validation failure.
type Issue struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a {"detail": message} body.
func Error(w http.ResponseWriter, message string, status int) {
	JSON(w, map[string]string{"detail": message}, status)
}

// Invalid writes a 422 response listing the validation issues.
func Invalid(w http.ResponseWriter, issues []Issue) {
	JSON(w, map[string][]Issue{"detail": issues}, http.StatusUnprocessableEntity)
}

// ValidationIssues converts a validator error into issues located in the
// request body. Errors that did not come from the validator become a single
// body-level issue.
func ValidationIssues(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Loc: []string{"body"}, Msg: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Loc: []string{"body", fe.Field()},
			Msg: describe(fe),
		})
	}
	return issues
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// NewValidator returns a validator that reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Page holds skip/limit query parameters.
type Page struct {
	Skip  int
	Limit int
}

// ParsePage reads skip and limit from the query string. skip must be >= 0
// and limit between 1 and maxLimit; a missing value takes its default.
func ParsePage(r *http.Request, maxLimit int) (Page, []Issue) {
	p := Page{Skip: 0, Limit: maxLimit}
	var issues []Issue

	if s := r.URL.Query().Get("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			issues = append(issues, Issue{Loc: []string{"query", "skip"}, Msg: "skip must be an integer >= 0"})
		} else {
			p.Skip = v
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > maxLimit {
			issues = append(issues, Issue{
				Loc: []string{"query", "limit"},
				Msg: fmt.Sprintf("limit must be an integer between 1 and %d", maxLimit),
			})
		} else {
			p.Limit = v
		}
	}
	return p, issues
}

// PathID parses the {id} path value as a positive integer.
func PathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CORS allows any origin to call the wrapped handler, answering preflight
// requests directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if origin := r.Header.Get("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if hdrs := r.Header.Get("Access-Control-Request-Headers"); hdrs != "" {
				h.Set("Access-Control-Allow-Headers", hdrs)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
