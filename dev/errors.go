package dev

// error definitions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNoHandler         = Error("edge handler not set")
	ErrShortCycle        = Error("cycle missing edge timestamps")
	ErrCurtainOrder      = Error("curtain close precedes open")
	ErrFlawedGeometry    = Error("sensor geometry not usable")
	ErrExposureUnderflow = Error("corrected exposure not positive")
)
