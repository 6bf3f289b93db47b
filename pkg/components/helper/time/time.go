package time

import "time"

var UTC bool

// Now returns the current time, in UTC when configured.
func Now() time.Time {
	t := time.Now()
	if UTC {
		t = t.UTC()
	}
	return t
}
