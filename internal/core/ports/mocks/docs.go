// Package mocks provides testify mocks of the core ports for handler tests.
package mocks
