// Package server hosts the dashboard over HTTP.
//
// It serves the page, the layout and chart specs as JSON, chart images
// rendered by the chart package, and a websocket endpoint that runs one
// reactive loop per connection: the browser sends input changes and the
// server pushes the recomputed chart specs back.
//
// Every response carries an X-Request-ID and a content ETag, and bodies are
// brotli-compressed for clients that accept it.
package server
