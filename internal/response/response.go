// Package response tells V-QUEST archive responses apart from HTML error pages.
package response

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrorSelector matches the elements V-QUEST uses to report form errors
const ErrorSelector = "div.form_error"

// ErrUnexpectedResponse is returned for an HTML response that carries no form errors
var ErrUnexpectedResponse = errors.New("unexpected HTML response")

// ServerError holds the messages reported by the V-QUEST form
type ServerError struct {
	Messages []string
}

func (e *ServerError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// IsHTML reports whether a Content-Type header value declares an HTML document
func IsHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

// Classify returns nil when body should be treated as an archive.
// HTML bodies yield a *ServerError when form errors are present and
// ErrUnexpectedResponse otherwise.
func Classify(body []byte, contentType string) error {
	if !IsHTML(contentType) {
		return nil
	}

	messages, err := FormErrors(body)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return fmt.Errorf("%w (content type %q, %d bytes)", ErrUnexpectedResponse, contentType, len(body))
	}

	return &ServerError{Messages: messages}
}

// FormErrors extracts the text of every form error element in an HTML document
func FormErrors(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML response: %w", err)
	}

	var messages []string

	doc.Find(ErrorSelector).Each(func(_ int, s *goquery.Selection) {
		messages = append(messages, strings.TrimSpace(s.Text()))
	})

	return messages, nil
}
