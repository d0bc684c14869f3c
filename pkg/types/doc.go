// Package types defines the Lead and Opportunity entity types, the
// persisted configuration schemas, and standard error types for the
// sellerdesk console core.
package types
