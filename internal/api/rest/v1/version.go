// Package v1 is the JSON REST adapter of the workbench.
package v1

// BasePath is the route prefix of API version 1
const BasePath = "/api/v1/cwb"

// SessionHeader carries the session ID on requests and responses
const SessionHeader = "X-Session-ID"
