// Package http implements the HTTP transport layer of qr-keeper.
//
// It exposes route wiring, request handlers and middleware for the REST API,
// the short-link redirect endpoint and the blob endpoint that serves
// offloaded envelopes. Tracing, access logging, bearer authentication and
// upload limits are handled here before requests reach the service layer.
package http
