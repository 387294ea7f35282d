package common

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/moogar0880/problems"
)

// snippetLimit caps how much of an unstructured error body gets quoted back
// in the error message.
const snippetLimit = 512

type ProblemError struct {
	problems.DefaultProblem
}

func (o *ProblemError) Error() string {
	return fmt.Sprintf("%d %s: %s", o.ProblemStatus(), o.ProblemTitle(), o.Detail)
}

// CheckResponse returns nil if the response status is one of the expected
// codes. Otherwise it turns the response into an error, decoding an RFC 7807
// problem body when the server sent one.
func CheckResponse(res *http.Response, expected ...int) error {
	for _, exp := range expected {
		if res.StatusCode == exp {
			return nil
		}
	}

	ct, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err == nil && ct == problems.ProblemMediaType {
		var prob ProblemError

		if err := DecodeJSONBody(res, &prob.DefaultProblem); err != nil {
			return fmt.Errorf(
				"could not decode problem response (status %d): %w",
				res.StatusCode,
				err,
			)
		}

		return &prob
	}

	if snippet := bodySnippet(res); snippet != "" {
		return fmt.Errorf("unexpected HTTP response code %d: %s", res.StatusCode, snippet)
	}

	return fmt.Errorf("unexpected HTTP response code %d", res.StatusCode)
}

func bodySnippet(res *http.Response) string {
	if res.Body == nil {
		return ""
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, snippetLimit))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(raw))
}
