package cache

import "github.com/lvillani/vagrant-metadata/internal/domain"

// Ensure BadgerCache implements domain.DigestCache
var _ domain.DigestCache = (*BadgerCache)(nil)

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		Directory: "",
		InMemory:  false,
		Logger:    false,
	}
}
