package store

import "context"

// NopLog is an EventLog that discards every event. Used in tests and
// when no event database is configured.
type NopLog struct{}

func (NopLog) AppendLLMEvent(context.Context, LLMEvent) error { return nil }
