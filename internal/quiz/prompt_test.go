package quiz

import (
	"strings"
	"testing"
)

func TestBuildPrompt_TopicScoped(t *testing.T) {
	h := NewHistory(50)
	p := BuildPrompt("Cardiac", 5, h)

	if !strings.Contains(p, "Generate exactly 5 unique multiple-choice nursing questions STRICTLY about 'Cardiac'") {
		t.Error("topic prompt missing scoped header")
	}
	if strings.Contains(p, "previously asked questions") {
		t.Error("empty history should add no exclusion block")
	}
}

func TestBuildPrompt_GeneralVariants(t *testing.T) {
	h := NewHistory(50)

	for _, topic := range []string{"", "General", "general"} {
		p := BuildPrompt(topic, 3, h)
		if !strings.Contains(p, "diverse nursing multiple-choice questions") {
			t.Errorf("topic %q should use the general prompt", topic)
		}
	}
}

func TestBuildPrompt_ExclusionLimits(t *testing.T) {
	h := NewHistory(50)
	var qs []Question
	for i := 0; i < 20; i++ {
		qs = append(qs, Question{Question: strings.Repeat("x", i+1) + "?"})
	}
	h.Record(qs, "Cardiac")
	h.Record(qs, GeneralTopic)

	topicPrompt := BuildPrompt("Cardiac", 5, h)
	_, exclusions, found := strings.Cut(topicPrompt, "previously asked questions:\n")
	if !found {
		t.Fatal("topic prompt missing exclusion block")
	}
	if n := strings.Count(exclusions, "- "); n != topicExclusions {
		t.Errorf("topic prompt lists %d exclusions, want %d", n, topicExclusions)
	}

	p := BuildPrompt(GeneralTopic, 5, h)
	if !strings.Contains(p, "Do NOT repeat any of these") {
		t.Error("general prompt missing exclusion block")
	}
	_, exclusions, _ = strings.Cut(p, "previously asked questions:\n")
	if n := strings.Count(exclusions, "- "); n != generalExclusions {
		t.Errorf("general prompt lists %d exclusions, want %d", n, generalExclusions)
	}
}

func TestRetrySuffix(t *testing.T) {
	s := retrySuffix(7)
	if !strings.Contains(s, "Generate 7 COMPLETELY UNIQUE questions") {
		t.Errorf("unexpected suffix: %q", s)
	}
}
