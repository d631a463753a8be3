// Package maps stores the immutable map templates sessions are created from.
//
// Templates live as JSON files in a directory shipped with the server and
// can also be registered at runtime over the API. Every template is
// validated once, at load or registration; consumers may trust any template
// the store hands out.
package maps
