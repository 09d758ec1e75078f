// Package models defines the backend's domain entities and the payloads the
// client sends for them. Input payloads validate themselves before they
// reach the wire.
package models
