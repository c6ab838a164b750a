package ai

import "fmt"

// ConfigurationError indicates that no configured provider offers the
// capability a call requires. It is fatal to the call and never retried.
type ConfigurationError struct {
	Capability Capability
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no provider configured with %s capability", e.Capability)
}

// CapabilityError indicates that providers are configured but none of them
// offers the required capability.
type CapabilityError struct {
	Capability Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("configured providers lack %s capability", e.Capability)
}

// ProviderError carries an upstream HTTP failure or a malformed provider
// payload, including whatever detail the provider supplied.
type ProviderError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Detail)
}

// TimeoutError indicates the call exceeded its configured deadline. The
// caller may retry; nothing is cached or retried internally.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %s: call timed out: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
