package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGeneratedQuestions_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n[{\"text\":\"What is a loop?\",\"subtopic\":\"Loops\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_answer_index\":2}]\n```"

	questions, err := parseGeneratedQuestions(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	require.NotEmpty(t, q.ID)
	require.Equal(t, "What is a loop?", q.Text)
	require.Equal(t, "Loops", q.Subtopic)
	require.Equal(t, 2, q.CorrectAnswerIndex)
	require.Nil(t, q.UserAnswerIndex)
}

func TestParseGeneratedQuestions_DropsMalformedEntries(t *testing.T) {
	raw := `[
		{"text":"ok","subtopic":"A","options":["a","b","c","d"],"correct_answer_index":0},
		{"text":"","subtopic":"A","options":["a","b"],"correct_answer_index":0},
		{"text":"one option","subtopic":"A","options":["a"],"correct_answer_index":0},
		{"text":"bad index","subtopic":"A","options":["a","b"],"correct_answer_index":5},
		{"text":"negative index","subtopic":"A","options":["a","b"],"correct_answer_index":-1}
	]`

	questions, err := parseGeneratedQuestions(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "ok", questions[0].Text)
}

func TestParseGeneratedQuestions_InvalidJSON(t *testing.T) {
	_, err := parseGeneratedQuestions("I could not generate a quiz, sorry.")
	require.Error(t, err)
}

func TestParseGeneratedQuestions_UniqueIDs(t *testing.T) {
	raw := `[
		{"text":"q1","subtopic":"A","options":["a","b"],"correct_answer_index":0},
		{"text":"q2","subtopic":"A","options":["a","b"],"correct_answer_index":1}
	]`

	questions, err := parseGeneratedQuestions(raw)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.NotEqual(t, questions[0].ID, questions[1].ID)
}
