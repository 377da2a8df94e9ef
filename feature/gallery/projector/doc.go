// Package projector folds parsed keys into the target state of a sync pass:
// distinct galleries with their cover image, distinct handles and
// (gallery, handle) pairs, and distinct photos. Folders without a date prefix
// are reported in Model.Skipped instead of being indexed.
package projector
