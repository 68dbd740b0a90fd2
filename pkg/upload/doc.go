// Package upload stores article images in an S3-compatible bucket and
// returns their public URLs. Only JPEG and PNG images are accepted.
package upload
