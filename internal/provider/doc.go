// Package provider exposes validated, normalised access to the application's
// named settings and database connection descriptors.
//
// Every accessor reads the raw value from a settings.Source, checks it for
// presence, emptiness and whitespace-only content, and then applies the
// setting's normalisation rule. Failures are reported as *Error values whose
// Kind tells callers which check failed. A Provider holds no state besides its
// source and is safe for concurrent use.
package provider
