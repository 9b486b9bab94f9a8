// Package api serves the margins pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                  liveness probe
//	GET  /v1/datasets              built-in dataset names
//	GET  /v1/datasets/{name}       samples of a built-in dataset (?seed=42)
//	POST /v1/render?format=png     rendered figure bytes
//	POST /v1/layout                layout document (JSON)
//
// Render and layout requests carry either samples or a built-in dataset name:
//
//	{"x": [1, 2, 3], "y": [2, 4, 6], "options": {"title": "Demo", "bins": 10}}
//	{"dataset": "study", "seed": 7, "options": {"correlation": true}}
//
// # Errors
//
// Failures are JSON objects with a machine-readable code:
//
//	{"code": "INVALID_INPUT", "message": "x and y differ in length: 10 != 8"}
//
// Validation errors map to 400, unknown datasets to 404 and render failures
// to 500.
//
// # Caching
//
// Responses are cached through the server's [pipeline.Runner]. Requests that
// send an X-Client-ID header get a private key space, and every response
// reports X-Cache: HIT or MISS.
package api
