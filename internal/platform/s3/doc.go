// Package s3 writes deployment snapshots to an S3 bucket.
//
// Any S3-compatible store works; set an endpoint and path-style addressing
// for MinIO or LocalStack.
package s3
