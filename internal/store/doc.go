// Package store defines the persistence interfaces and shared errors
// used by the training orchestration layer.
package store
