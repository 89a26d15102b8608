package quiz

import (
	"fmt"
	"strings"
)

const (
	// GeneralTopic is the default topic when the caller names none.
	GeneralTopic = "General"

	// topicExclusions / generalExclusions bound how many historical
	// questions go into the prompt as do-not-repeat examples. The
	// general prompt carries fewer to stay within budget.
	topicExclusions   = 10
	generalExclusions = 8
)

// retrySuffixFmt is appended for the single low-yield retry attempt.
const retrySuffixFmt = "\n\nCRITICAL: Generate %d COMPLETELY UNIQUE questions. No repeats or variations of common nursing questions."

const quizSystemPrompt = "You are a helpful medical assistant."

// BuildPrompt constructs the generation prompt for a topic, embedding
// strict formatting requirements and recent history as exclusions.
func BuildPrompt(topic string, n int, history *History) string {
	if topic != "" && !strings.EqualFold(topic, GeneralTopic) {
		return topicPrompt(topic, n, history.Recent(topic, topicExclusions))
	}
	return generalPrompt(n, history.Recent(GeneralTopic, generalExclusions))
}

func topicPrompt(topic string, n int, previous []string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Generate exactly %d unique multiple-choice nursing questions STRICTLY about '%s'. "+
			"Focus ONLY on %s - do not include general nursing questions or questions from other topics. "+
			"Return ONLY a JSON array in this exact format:\n"+
			"[\n"+
			"  {\"question\": \"What is...\", \"option1\": \"A\", \"option2\": \"B\", \"option3\": \"C\", \"option4\": \"D\", \"answer\": \"A\"}\n"+
			"]\n",
		n, topic, topic)

	b.WriteString("STRICT REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- ALL questions must be specifically about %s nursing care, procedures, assessment, or management\n", topic)
	b.WriteString("- Each question must have exactly 4 distinct, non-overlapping answer options (option1-option4)\n")
	b.WriteString("- Each question must have exactly ONE clearly correct answer that matches one of the 4 options\n")
	b.WriteString("- NO contradictory answers - avoid options that could both be considered correct\n")
	b.WriteString("- NO vague, ambiguous, or overly similar answer choices\n")
	b.WriteString("- AVOID 'all of the above', 'none of the above', or true/false formats\n")
	b.WriteString("- Use phrases like 'best approach', 'most appropriate', or 'priority action' if needed for clarity\n")
	fmt.Fprintf(&b, "- Make questions practical and clinically relevant to %s\n", topic)
	b.WriteString("- Focus on application, critical thinking, and clinical decision-making\n")
	fmt.Fprintf(&b, "- Questions should test knowledge specific to %s, not general nursing principles\n", topic)
	b.WriteString("- Each answer option should be clearly distinct and not overlap with others\n")
	b.WriteString("- Ensure the correct answer is definitively the BEST choice among the 4 options\n")
	b.WriteString("- Base correct answers on current evidence-based nursing practice and clinical guidelines\n")
	b.WriteString("- Make incorrect options plausible but clearly wrong to experienced nurses\n")

	appendExclusions(&b, previous, true)
	return b.String()
}

func generalPrompt(n int, previous []string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Generate exactly %d diverse nursing multiple-choice questions covering different areas of general nursing practice. "+
			"Return ONLY a JSON array in this exact format:\n"+
			"[\n"+
			"  {\"question\": \"What is...\", \"option1\": \"A\", \"option2\": \"B\", \"option3\": \"C\", \"option4\": \"D\", \"answer\": \"A\"}\n"+
			"]\n",
		n)

	b.WriteString("STRICT REQUIREMENTS:\n")
	b.WriteString("- Cover diverse nursing topics (medication admin, patient safety, assessment, etc.)\n")
	b.WriteString("- Each question must have exactly 4 distinct, non-overlapping answer options (option1-option4)\n")
	b.WriteString("- Each question must have exactly ONE clearly correct answer that matches one of the 4 options\n")
	b.WriteString("- NO contradictory answers - avoid options that could both be considered correct\n")
	b.WriteString("- NO vague, ambiguous, or overly similar answer choices\n")
	b.WriteString("- AVOID 'all of the above', 'none of the above', or true/false formats\n")
	b.WriteString("- Use phrases like 'best approach', 'most appropriate', or 'priority action' if needed for clarity\n")
	b.WriteString("- Make questions practical and clinically relevant to nursing practice\n")
	b.WriteString("- Focus on application, critical thinking, and clinical decision-making\n")
	b.WriteString("- Each answer option should be clearly distinct and not overlap with others\n")
	b.WriteString("- Ensure the correct answer is definitively the BEST choice among the 4 options\n")
	b.WriteString("- Test real-world nursing scenarios and evidence-based practice\n")
	b.WriteString("- Base correct answers on current evidence-based nursing practice and clinical guidelines\n")
	b.WriteString("- Make incorrect options plausible but clearly wrong to experienced nurses\n")

	appendExclusions(&b, previous, false)
	return b.String()
}

func appendExclusions(b *strings.Builder, previous []string, topicScoped bool) {
	if len(previous) == 0 {
		return
	}

	if topicScoped {
		b.WriteString("\nIMPORTANT: Do NOT repeat or rephrase any of these previously asked questions:\n")
	} else {
		b.WriteString("\nIMPORTANT: Do NOT repeat any of these previously asked questions:\n")
	}
	for _, q := range previous {
		fmt.Fprintf(b, "- %s\n", q)
	}
	if topicScoped {
		b.WriteString("\nGenerate completely NEW and DIFFERENT questions about the same topic.\n")
	} else {
		b.WriteString("\nGenerate completely NEW and DIFFERENT questions.\n")
	}
}
