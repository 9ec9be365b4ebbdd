package model

import "net/http"

// RequestParameters carries what every operation accepts: extra headers and
// an override for the request Content-Type. Cancellation is the context
// given to the operation.
type RequestParameters struct {
	Headers     http.Header
	ContentType string
}

type PropfindRequestType int

const (
	// PropfindAllPropertiesImplied sends no body, which RFC 4918 treats as allprop.
	PropfindAllPropertiesImplied PropfindRequestType = iota
	PropfindAllProperties
	PropfindNamedProperties
)

type PropfindParameters struct {
	RequestParameters
	ApplyTo     PropfindApplyTo
	RequestType PropfindRequestType
	Properties  []PropertyName
	// Namespaces maps prefix => namespace uri, declared on the request root.
	Namespaces map[string]string
}

type ProppatchParameters struct {
	RequestParameters
	Set        []ResourceProperty
	Remove     []PropertyName
	Namespaces map[string]string
	LockToken  string
}

type MkcolParameters struct {
	RequestParameters
	LockToken string
}

type DeleteParameters struct {
	RequestParameters
	LockToken string
}

// CopyParameters always sends an Overwrite header. The zero value sends
// "Overwrite: F", so an existing destination fails with 412 unless
// Overwrite is set. A server's own default (T) never applies.
type CopyParameters struct {
	RequestParameters
	ApplyTo         CopyApplyTo
	Overwrite       bool
	SourceLockToken string
	DestLockToken   string
}

// MoveParameters sends "Overwrite: F" unless Overwrite is set, like
// CopyParameters.
type MoveParameters struct {
	RequestParameters
	ApplyTo         CopyApplyTo
	Overwrite       bool
	SourceLockToken string
	DestLockToken   string
}

type GetFileParameters struct {
	RequestParameters
}

type PutFileParameters struct {
	RequestParameters
	LockToken string
}

type LockParameters struct {
	RequestParameters
	ApplyTo LockApplyTo
	Timeout LockTimeout
	Scope   LockScope
	Owner   *LockOwner
}

type RefreshLockParameters struct {
	RequestParameters
	Timeout LockTimeout
}

type UnlockParameters struct {
	RequestParameters
}

type SearchParameters struct {
	RequestParameters
	// Scope is the href searched from, the request uri when empty.
	Scope   string
	Keyword string
	// Body, when set, is sent verbatim instead of a generated basicsearch.
	Body string
}

type OptionsParameters struct {
	RequestParameters
}
