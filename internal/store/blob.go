package store

import (
	"github.com/google/uuid"
)

// newLocator returns a fresh version 4 UUID. Its 122 random bits make
// locators unguessable; the canonical form is URL-safe.
func newLocator() string {
	return uuid.NewString()
}

// validLocator accepts only the canonical 36-character UUID form, so a
// locator can be used as a file name or object key without escaping.
func validLocator(locator string) bool {
	if len(locator) != 36 {
		return false
	}
	_, err := uuid.Parse(locator)
	return err == nil
}
