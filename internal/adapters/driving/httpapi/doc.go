// Package httpapi serves the document store over HTTP.
//
// Routes are mounted on a chi router:
//
//	GET /api/site            site title, description and version
//	GET /api/documents       every document
//	GET /api/document/{id}   one document, 404 when absent
//	GET /api/search?q=&limit= ranked search results
//	GET /api/events          server-sent change notifications
package httpapi
