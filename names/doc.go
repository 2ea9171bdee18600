// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package names loads the candidate names list, one name per line, from a
// local file or an S3-compatible bucket (s3://bucket/key).
package names
