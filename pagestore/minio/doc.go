// Package minio provides a pagestore backend for MinIO and other
// S3-compatible object stores. It mirrors the S3 backend but speaks the
// MinIO client API, which self-hosted deployments commonly run against.
package minio
