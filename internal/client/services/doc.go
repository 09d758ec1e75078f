// Package services holds the client's application services: workflows that
// span several API calls or touch local state, built on the api facade.
package services
