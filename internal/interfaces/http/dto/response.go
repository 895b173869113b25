package dto

import (
	"net/url"
	"strconv"
)

// Response represents a standard API error response
type Response struct {
	Success   bool       `json:"success"`
	Error     *ErrorInfo `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail represents a single field-level validation failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    ErrCodeValidation,
			Message: message,
			Details: details,
		},
		RequestID: requestID,
	}
}

// Page is the envelope for list responses. Next and Previous are fully
// qualified relative URLs for the adjacent pages, or null at the edges.
type Page struct {
	Results  any     `json:"results"`
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NewPage builds a list envelope around results, deriving the next and
// previous links from the request URL's limit/offset parameters.
func NewPage(requestURL *url.URL, results any, count int64, limit, offset int) Page {
	page := Page{
		Results: results,
		Count:   count,
	}

	if int64(offset+limit) < count {
		next := pageURL(requestURL, limit, offset+limit)
		page.Next = &next
	}
	if offset > 0 {
		prevOffset := offset - limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prev := pageURL(requestURL, limit, prevOffset)
		page.Previous = &prev
	}

	return page
}

func pageURL(requestURL *url.URL, limit, offset int) string {
	u := *requestURL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	return u.String()
}
