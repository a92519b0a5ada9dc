package service

import "context"

// StaticLLM always answers with the same completion. Used for local
// development without provider credentials, and in tests.
type StaticLLM struct {
	Answer string
}

func NewStaticLLM(answer string) StaticLLM {
	return StaticLLM{Answer: answer}
}

func (s StaticLLM) Complete(context.Context, string) (string, error) {
	return s.Answer, nil
}
