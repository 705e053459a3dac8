package balance

import "github.com/pkg/errors"

// Two error families, per §7:
//
//  1. Programmer/config errors (assertion style): a disallowed
//     configuration, a strict-mode violation of the input contract, or an
//     internal invariant break. These are fatal within the current call —
//     ConfigError is returned from New; AssertionError is raised as a
//     panic inside the engine and, in strict mode, returned as the error
//     of Balance — but never corrupt state outside of it: the per-call
//     state a Balancer holds is reset at the start of every Balance.
//  2. Malformed-content errors (recoverable): absorbed silently by the
//     algorithm's parse-error branches; optionally logged (see log.go),
//     never surfaced to the caller.

// ConfigError reports a rejected Balancer configuration (§6).
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string { return e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{cause: errors.Errorf(format, args...)}
}

// AssertionError is the panic value raised for strict-mode input-contract
// violations and internal invariant breaks (§7 category 1). It is never
// raised in non-strict mode for content reasons — only for genuine
// programmer errors (a node flattened twice, a child missing from its
// claimed parent).
type AssertionError struct {
	cause error
}

func (e *AssertionError) Error() string { return e.cause.Error() }
func (e *AssertionError) Unwrap() error { return e.cause }

func newAssertionError(msg string) *AssertionError {
	return &AssertionError{cause: errors.New(msg)}
}

func newAssertionErrorf(format string, args ...interface{}) *AssertionError {
	return &AssertionError{cause: errors.Errorf(format, args...)}
}
