// Package inspect serves a mounted tree over HTTP for interactive debugging.
//
// The inspector owns a memhost document with one mounted demo. Browsers (or
// curl) read the current HTML, fire events at elements by node id, and watch
// the reconciliation records each event produced on a websocket:
//
//	GET  /                        HTML page with data-node ids
//	GET  /snapshot                bare container HTML (?pretty=1)
//	POST /events/{node}/{event}   dispatch, reply with the outcome delta
//	GET  /ws                      stream of patch records
//	GET  /metrics                 Prometheus metrics
//
// All access to the document goes through one mutex: the renderer is
// single-threaded.
package inspect
