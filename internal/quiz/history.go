package quiz

import "sync"

// DefaultHistoryLimit caps how many question texts are kept per topic.
const DefaultHistoryLimit = 50

// History tracks previously generated questions per topic so repeated
// cache-miss generations do not resurface the same question. Safe for
// concurrent use.
type History struct {
	mu     sync.Mutex
	limit  int
	topics map[string][]string
}

// NewHistory creates a History keeping at most limit questions per
// topic (oldest evicted first).
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		limit:  limit,
		topics: make(map[string][]string),
	}
}

// IsUnique reports whether the question has not been recorded for the
// topic. Unknown topics are trivially unique. Comparison uses the Key
// normal form, so punctuation and casing drift do not defeat dedup.
func (h *History) IsUnique(question, topic string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, ok := h.topics[topic]
	if !ok {
		return true
	}

	key := Key(question)
	for _, q := range existing {
		if Key(q) == key {
			return false
		}
	}
	return true
}

// Record appends the raw question texts to the topic's history, then
// truncates to the most recent limit entries.
func (h *History) Record(questions []Question, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.topics[topic]
	for _, q := range questions {
		if q.Question != "" {
			list = append(list, q.Question)
		}
	}
	if len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.topics[topic] = list
}

// Recent returns up to n of the most recent question texts for the
// topic, oldest first.
func (h *History) Recent(topic string, n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.topics[topic]
	if n > 0 && len(list) > n {
		list = list[len(list)-n:]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Len returns how many questions are recorded for the topic.
func (h *History) Len(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Clear removes one topic's history, reporting whether it existed.
func (h *History) Clear(topic string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		return false
	}
	delete(h.topics, topic)
	return true
}

// TopicSummary describes one topic's history for introspection.
type TopicSummary struct {
	Count  int      `json:"count"`
	Recent []string `json:"recent_questions"`
}

// Snapshot returns a per-topic summary with the last five questions,
// mirroring what the history endpoint exposes.
func (h *History) Snapshot() map[string]TopicSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]TopicSummary, len(h.topics))
	for topic, list := range h.topics {
		recent := list
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		cp := make([]string, len(recent))
		copy(cp, recent)
		out[topic] = TopicSummary{Count: len(list), Recent: cp}
	}
	return out
}
