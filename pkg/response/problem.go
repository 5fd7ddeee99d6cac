package response

// Problem is an RFC 7807 style error body returned by the payment endpoints.
type Problem struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Detail  string              `json:"detail,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}

const (
	ProblemTypeValidation      = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	ProblemTypeNotFound        = "https://tools.ietf.org/html/rfc9110#section-15.5.5"
	ProblemTypeTooManyRequests = "https://tools.ietf.org/html/rfc6585#section-4"
	ProblemTypeInternal        = "https://tools.ietf.org/html/rfc9110#section-15.6.1"
)

func NewProblem(status int, typ, title, detail string) *Problem {
	return &Problem{Type: typ, Title: title, Status: status, Detail: detail}
}

// WithError appends msg under field, keeping insertion order per field.
func (p *Problem) WithError(field, msg string) *Problem {
	if p.Errors == nil {
		p.Errors = map[string][]string{}
	}
	p.Errors[field] = append(p.Errors[field], msg)
	return p
}
