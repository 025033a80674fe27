package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionGradeShortAnswerIsCaseAndWhitespaceInsensitive(t *testing.T) {
	q := Question{ID: 4, Kind: ShortAnswerQuestion, CorrectAnswer: ShortAnswer("Document Object Model")}

	for _, in := range []string{"Document Object Model", " document object model ", "DOCUMENT OBJECT MODEL", "\tDocument Object Model\n"} {
		assert.True(t, q.Grade(ShortAnswer(in)), "answer %q", in)
	}
	assert.False(t, q.Grade(ShortAnswer("Document Model")))
	assert.False(t, q.Grade(ShortAnswer("")))
}

func TestQuestionGradeRejectsVariantMismatch(t *testing.T) {
	mc := Question{ID: 1, Kind: MultipleChoiceQuestion, Options: []string{"a", "b"}, CorrectAnswer: MultipleChoice(0)}
	tf := Question{ID: 2, Kind: TrueFalseQuestion, CorrectAnswer: TrueFalse(false)}

	assert.True(t, mc.Grade(MultipleChoice(0)))
	assert.False(t, mc.Grade(MultipleChoice(1)))
	// the zero values would compare equal under loose equality
	assert.False(t, mc.Grade(TrueFalse(false)))
	assert.False(t, mc.Grade(ShortAnswer("0")))

	assert.True(t, tf.Grade(TrueFalse(false)))
	assert.False(t, tf.Grade(TrueFalse(true)))
	assert.False(t, tf.Grade(MultipleChoice(0)))
}

func TestQuestionAccepts(t *testing.T) {
	mc := Question{ID: 1, Kind: MultipleChoiceQuestion, Options: []string{"a", "b"}, CorrectAnswer: MultipleChoice(0)}
	assert.True(t, mc.Accepts(MultipleChoice(1)))
	assert.False(t, mc.Accepts(MultipleChoice(2)))
	assert.False(t, mc.Accepts(MultipleChoice(-1)))
	assert.False(t, mc.Accepts(TrueFalse(true)))
}

func TestQuestionJSONWireShape(t *testing.T) {
	data := []byte(`[
		{"id":1,"type":"multiple_choice","question":"Declare a variable?","options":["var x;","variable x;"],"correct_answer":0},
		{"id":3,"type":"true_false","question":"JS is compiled.","correct_answer":false},
		{"id":4,"type":"short_answer","question":"DOM?","correct_answer":"Document Object Model"}
	]`)

	var qs []Question
	require.NoError(t, json.Unmarshal(data, &qs))
	require.Len(t, qs, 3)

	assert.Equal(t, MultipleChoice(0), qs[0].CorrectAnswer)
	assert.Equal(t, []string{"var x;", "variable x;"}, qs[0].Options)
	assert.Equal(t, TrueFalse(false), qs[1].CorrectAnswer)
	assert.Equal(t, ShortAnswer("Document Object Model"), qs[2].CorrectAnswer)

	out, err := json.Marshal(qs[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"type":"true_false","question":"JS is compiled.","correct_answer":false}`, string(out))
}

func TestQuestionJSONRejectsMismatchedCorrectAnswer(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"id":9,"type":"true_false","question":"?","correct_answer":"yes"}`), &q)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":9,"type":"essay","question":"?","correct_answer":"yes"}`), &q)
	assert.Error(t, err)
}

func TestCourseFlattenAndClone(t *testing.T) {
	c := &Course{
		ID: "c1",
		Chapters: []Chapter{
			{ID: 1, Lessons: []Lesson{{ID: 1}, {ID: 2}}},
			{ID: 2},
			{ID: 3, Lessons: []Lesson{{ID: 3, Quiz: []Question{{ID: 1, Options: []string{"x"}}}}}},
		},
	}

	flat := c.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{flat[0].ID, flat[1].ID, flat[2].ID})
	assert.Equal(t, 3, c.LessonCount())

	cp := c.Clone()
	cp.Chapters[0].Lessons[0].Completed = true
	cp.Chapters[2].Lessons[0].Quiz[0].Options[0] = "changed"
	assert.False(t, c.Chapters[0].Lessons[0].Completed)
	assert.Equal(t, "x", c.Chapters[2].Lessons[0].Quiz[0].Options[0])

	s := c.Summary()
	assert.Equal(t, 3, s.ChapterCount)
	assert.Equal(t, 3, s.LessonCount)
}
