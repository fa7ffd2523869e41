// Package wrap provides ownership-tracked handles over composite foreign
// values. Factories produce owned handles; Borrow wraps caller-owned input.
// An owned handle must be released into an output slot or a parent
// container, or destroyed, before the call returns. Double release,
// releasing a borrowed handle, and any use after release are ownership
// errors.
package wrap
