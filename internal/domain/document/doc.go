// Package document holds the domain model for rendering a record into a
// single-page document and tracking where the rendered bytes live.
package document
