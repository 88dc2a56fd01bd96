package archiver

// Policy decides when the active log file must roll over. The owning logger
// consults it after every successful append, never on a timer, so a burst of
// writes can exceed the limit by at most one record before rotation fires.
type Policy interface {
	// Due reports whether a file of the given byte size must be rotated.
	Due(size int64) bool
}

// SizePolicy rotates the log once it reaches Max bytes.
//
// A Max of zero or less permanently disables rotation: Due never returns
// true and the log file grows without bound. That is a supported
// configuration, not an error.
type SizePolicy struct {
	Max int64 // Rotation threshold in bytes.
}

// Due satisfies the Policy interface.
func (p SizePolicy) Due(size int64) bool {
	return p.Max > 0 && size >= p.Max
}

// Our policy must satisfy the Policy interface.
var _ Policy = SizePolicy{}
