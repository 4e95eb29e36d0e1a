package booking

import "regexp"

// emailPattern is intentionally permissive; deliverability is the
// notification service's problem, not the wizard's.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
