// Package server implements the catalog's client-facing transport: a TLS
// listener accepting persistent connections that carry one JSON request per
// line and receive one JSON response per line.
package server

import "time"

// RequestType enumerates the operations a client may ask for.
type RequestType string

const (
	RequestLogin            RequestType = "LOGIN"
	RequestExit             RequestType = "EXIT"
	RequestGetAll           RequestType = "GETALL"
	RequestGetByID          RequestType = "GETBYID"
	RequestGetByModel       RequestType = "GETBYMODEL"
	RequestGetByReleaseYear RequestType = "GETBYRELEASEYEAR"
	RequestInsert           RequestType = "INSERT"
	RequestUpdate           RequestType = "UPDATE"
	RequestDelete           RequestType = "DELETE"
)

// Request is one decoded protocol line. Content is an opaque string payload:
// JSON credentials for LOGIN, an id/model/year for lookups, a serialized
// funko for INSERT and UPDATE, and a funko id for DELETE. Token is absent for
// LOGIN and required for everything else.
type Request struct {
	Type    RequestType `json:"type"`
	Token   string      `json:"token,omitempty"`
	Content string      `json:"content,omitempty"`
}

// Login is the credential document carried in a LOGIN request's content.
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Status is the outcome class of a response.
type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
	StatusToken Status = "TOKEN"
	StatusBye   Status = "BYE"
)

// Response is one protocol line sent back to the client. Message carries the
// serialized payload on OK, the token string on TOKEN, and human-readable
// error text on ERROR.
type Response struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func newResponse(status Status, message string) Response {
	return Response{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
