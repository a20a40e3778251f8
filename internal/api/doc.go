// Package api provides HTTP handlers for the training API.
package api
