// Package s3 provides an Amazon S3 backend for pagestore.
//
// Indexes built in object storage keep their meta page next to the list
// segments; planning reads it back through Store. StatsCatalog additionally
// keeps per-index statistics in DynamoDB so planners can resolve list and
// tuple counts with a single key lookup instead of a ranged S3 read.
package s3
