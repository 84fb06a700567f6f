package controller

type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	MessageFetchFailed   = "fetch failed"
	MessageCreateFailed  = "create failed"
	MessageMissingFields = "missing required fields"
	MessageUserCreated   = "user added"
	TitleError           = "Error"
	TitleSuccess         = "Success"
)

// Status tells whether a request is in flight and whether the last one failed.
// Err is set for StatusError and is either a *ValidationError or a *RequestError.
type Status struct {
	Kind    StatusKind
	Message string
	Err     error
}

func (s Status) Loading() bool {
	return s.Kind == StatusLoading
}

func idle() Status {
	return Status{Kind: StatusIdle}
}

func loading() Status {
	return Status{Kind: StatusLoading}
}

func failed(msg string, err error) Status {
	return Status{Kind: StatusError, Message: msg, Err: err}
}
