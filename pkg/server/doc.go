// Package server exposes a template library over HTTP with a chi router.
// Browsers get server-rendered HTML forms that post back to the same URL;
// API clients can post JSON and receive the validation result, as described
// by the OpenAPI document served at /openapi.json.
package server
