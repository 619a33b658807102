package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is used if router, cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "router, cfg or db is nil"

	// DefaultLimit is the page size of list endpoints without a limit parameter.
	DefaultLimit = 100

	// MaxLimit is the largest accepted limit parameter.
	MaxLimit = 500
)
