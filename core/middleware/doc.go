// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the admin routes (sync trigger, plan, integrity).
//   - rayid: a unique request id (RayID) per request, stored in the context
//     and echoed in the response headers for tracing.
package middleware
