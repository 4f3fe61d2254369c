package service

import "github.com/lunora-app/lunora/internal/model"

// DeriveSubtopics walks the question list and returns the distinct subtopic
// names in first-seen order together with the current question count per
// subtopic. Questions without a subtopic fall into model.DefaultSubtopic.
// An empty question list yields empty results.
func DeriveSubtopics(questions []model.Question) ([]string, map[string]int) {
	names := make([]string, 0)
	totals := make(map[string]int)

	for _, q := range questions {
		key := q.SubtopicKey()
		if _, seen := totals[key]; !seen {
			names = append(names, key)
		}
		totals[key]++
	}

	return names, totals
}

// AppendQuestions inserts newQuestions immediately after the last existing
// question of subtopicName so subtopic blocks stay contiguous; when no
// question of that subtopic exists yet, they are appended at the end. Every
// inserted question is force-tagged with subtopicName, which normalizes
// extra/practice questions into the target bucket whatever label they
// arrived with.
func AppendQuestions(questions []model.Question, newQuestions []model.Question, subtopicName string) []model.Question {
	if len(newQuestions) == 0 {
		return questions
	}

	tagged := make([]model.Question, len(newQuestions))
	copy(tagged, newQuestions)
	for i := range tagged {
		tagged[i].Subtopic = subtopicName
	}

	insertAt := len(questions)
	for i := len(questions) - 1; i >= 0; i-- {
		if questions[i].SubtopicKey() == subtopicName {
			insertAt = i + 1
			break
		}
	}

	result := make([]model.Question, 0, len(questions)+len(tagged))
	result = append(result, questions[:insertAt]...)
	result = append(result, tagged...)
	result = append(result, questions[insertAt:]...)
	return result
}

// rebuildPerformanceTotals recomputes every subtopic's total from the live
// question list, keeping existing scored counts for subtopics that survive.
// Scored counts never exceed the recomputed total.
func rebuildPerformanceTotals(questions []model.Question, current model.SubtopicPerformanceMap) model.SubtopicPerformanceMap {
	_, totals := DeriveSubtopics(questions)

	rebuilt := make(model.SubtopicPerformanceMap, len(totals))
	for name, total := range totals {
		scored := 0
		if perf, ok := current[name]; ok {
			scored = perf.Scored
			if scored > total {
				scored = total
			}
		}
		rebuilt[name] = model.SubtopicPerformance{Name: name, Scored: scored, Total: total}
	}
	return rebuilt
}

// zeroedPerformance builds a fresh subtopic map from the question list with
// all scored counts at zero, used when a session is created or reset.
func zeroedPerformance(questions []model.Question) model.SubtopicPerformanceMap {
	_, totals := DeriveSubtopics(questions)

	perf := make(model.SubtopicPerformanceMap, len(totals))
	for name, total := range totals {
		perf[name] = model.SubtopicPerformance{Name: name, Scored: 0, Total: total}
	}
	return perf
}
