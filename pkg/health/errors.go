package health

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrCheckFailed = errors.New("health: check failed")

// Err returns nil for a healthy response and ErrCheckFailed naming the
// failing checks otherwise.
func (r *Response) Err() error {
	if r == nil || r.Status == StatusHealthy {
		return nil
	}
	var failed []string
	for name, c := range r.Checks {
		if c.Status != StatusHealthy {
			failed = append(failed, name+": "+c.Error)
		}
	}
	slices.Sort(failed)
	return fmt.Errorf("%w: %s", ErrCheckFailed, strings.Join(failed, "; "))
}
