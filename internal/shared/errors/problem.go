// Package errors renders RFC 7807 problem documents for the twin's JSON error responses.
package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

const (
	TypeBadRequest = "/problems/bad-request"
	TypeNotFound   = "/problems/not-found"
	TypeInternal   = "/problems/internal-error"
)

var (
	ErrBadRequest = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ErrNotFound   = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ErrInternal   = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// ForStatus picks the template matching status and uses err as the detail.
// Statuses without a template become 500.
func ForStatus(status int, err error) ProblemDetail {
	var problem ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = ErrBadRequest
	case http.StatusNotFound:
		problem = ErrNotFound
	default:
		problem = ErrInternal
	}
	if err != nil {
		problem = problem.WithDetail(err.Error())
	}
	return problem
}

// Respond writes problem as application/problem+json. Instance defaults to the request path.
func Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}
