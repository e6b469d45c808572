// Package testutil contains common test utilities.
package testutil

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(aFunction())
//
// where aFunction returns a single error value, to succinctly abort a test
// setup step that cannot reasonably fail.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
