package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")

// NonFieldErrors is the key used for validation failures that do not belong to
// a single input field, e.g. a password/repeat mismatch.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps an input field name to the list of validation messages for
// it. It is both the error value returned by validators and the JSON body of a
// 400 response.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, strings.Join(fe[k], ", "))
	}
	return b.String()
}

// Add appends a message to the given field's error list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// AsFieldErrors unwraps err into FieldErrors if it carries one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
