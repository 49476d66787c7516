package server

import "errors"

// errNoServersAreCreated is returned by NewServer when there is no HTTP
// handler or listen address to serve.
var errNoServersAreCreated = errors.New("no servers are created")
