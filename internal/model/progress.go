package model

// Progress is a computed snapshot of an enrollment, never persisted. Bonus
// lessons and quizzes show up only in the bonus counters; they are excluded
// from both sides of the percentage.
type Progress struct {
	TotalLessons       int     `json:"totalLessons"`
	CompletedLessons   int     `json:"completedLessons"`
	TotalQuizzes       int     `json:"totalQuizzes"`
	PassedQuizzes      int     `json:"passedQuizzes"`
	TotalLessonBonus   int     `json:"totalLessonBonus"`
	TotalQuizBonus     int     `json:"totalQuizBonus"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

func computeProgress(e *Enrollment) Progress {
	p := Progress{
		TotalLessons: e.TotalLessons,
		TotalQuizzes: len(e.QuizIDs),
	}

	for _, lp := range e.LessonProgresses {
		if lp.Bonus {
			p.TotalLessonBonus++
			continue
		}
		if lp.Completed {
			p.CompletedLessons++
		}
	}

	for _, s := range e.QuizSubmissions {
		if s.Bonus {
			p.TotalQuizBonus++
			continue
		}
		if s.Passed {
			p.PassedQuizzes++
		}
	}

	denominator := p.TotalLessons + p.TotalQuizzes
	if denominator > 0 {
		p.ProgressPercentage = float64(p.CompletedLessons+p.PassedQuizzes) * 100 / float64(denominator)
	}

	return p
}
