package rules

type Rule interface {
	ID() string
	Title() string
	Description() string

	// Request declares the query parameters sent to the weather endpoint.
	Request() Params

	// Expectation is the plain message describing what the rule demonstrates.
	// It may be empty.
	Expectation() string

	// Evaluate checks a response envelope.
	// Rules MUST NOT perform I/O.
	Evaluate(env Envelope) Result
}

// Envelope is the part of an HTTP response a rule may inspect.
type Envelope struct {
	StatusCode int
	// Body holds the raw JSON document, or nil when the payload was not JSON.
	Body []byte
}

func (e Envelope) HasBody() bool {
	return len(e.Body) > 0
}
