// Package gallery is the HTTP feature of the gallery index: public listings
// served through the read chain, gallery PIN validation, and the admin routes
// that trigger or preview a sync pass.
//
// # HTTP Endpoints
//
//   - GET /galleries : Lists galleries, newest first.
//   - GET /galleries/:folder : One gallery.
//   - GET /galleries/:folder/photos : Photos of a gallery (X-Gallery-PIN when protected).
//   - POST /galleries/:folder/validate-pin : Checks a PIN.
//   - GET /users/:handle/photos : Photos tagged with a user.
//   - POST /admin/sync : Runs a pass.
//   - GET /admin/sync/plan : Dry-run of a pass.
//   - GET /admin/sync/last : Result of the last pass.
//   - GET /admin/galleries/:folder : Compares one gallery across the database and storage.
package gallery
