package rules

func NewResult(status Status, detail string) Result {
	res := Result{Status: status}
	if detail != "" {
		res.Detail = detail
	}
	return res
}

func PassResult() Result {
	return NewResult(StatusPass, "")
}

func FailResult(detail string) Result {
	return NewResult(StatusFail, detail)
}

func ErrorResult(detail string) Result {
	return NewResult(StatusError, detail)
}

func SkipResult(reason string) Result {
	return NewResult(StatusSkip, reason)
}

func FailResultWithEvidence(detail string, evidence map[string]string) Result {
	res := NewResult(StatusFail, detail)
	res.Evidence = evidence
	return res
}
