package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/legalwriter/internal/common"
)

// FieldErrors maps a field name to what is wrong with it. It matches
// common.ErrValidation via errors.Is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Is(target error) bool { return target == common.ErrValidation }

// err returns nil when no field failed.
func (e FieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
