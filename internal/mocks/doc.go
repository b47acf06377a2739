// Package mocks provides shared test doubles for stores and services. Each
// mock exposes overridable function fields so individual tests can inject
// failures without redefining the whole implementation.
package mocks
