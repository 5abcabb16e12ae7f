// Package trivia implements the three step quiz served by the extension.
//
// The orchestrator asks question 1 and stores every answer in a slot before calling
// us, so the commands only validate the latest slot and ask the next question:
//
//	val_ans_1 -> question 2, val_ans_2 -> question 3, score -> verdict
package trivia

import (
	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/models"
)

const (
	CommandValidateAnswer1 = "val_ans_1"
	CommandValidateAnswer2 = "val_ans_2"
	CommandScore           = "score"
)

const (
	SlotAnswer1 = "answer_1"
	SlotAnswer2 = "answer_2"
	SlotAnswer3 = "answer_3"
)

// Domain state names the orchestrator resolves to its own state tags.
const (
	StateQuestion1 = "question_1"
	StateQuestion2 = "question_2"
	StateQuestion3 = "question_3"
)

var quiz = mustParseQuiz(quizYAML)

// Commands returns the trivia command table in the order the quiz runs.
func Commands() []extension.Command {
	return []extension.Command{
		{Name: CommandValidateAnswer1, Handler: ValidateAnswer1},
		{Name: CommandValidateAnswer2, Handler: ValidateAnswer2},
		{Name: CommandScore, Handler: Score},
	}
}

// ValidateAnswer1 checks the first answer and asks question 2.
func ValidateAnswer1(req *models.Request) *models.Response {
	if !quiz.IsChoice(req.Slot(SlotAnswer1)) {
		return reprompt(req, StateQuestion1)
	}
	return reply(req, quiz.Questions[0].Text())
}

// ValidateAnswer2 checks the second answer and asks question 3.
func ValidateAnswer2(req *models.Request) *models.Response {
	if !quiz.IsChoice(req.Slot(SlotAnswer2)) {
		return reprompt(req, StateQuestion2)
	}
	return reply(req, quiz.Questions[1].Text())
}

// Score checks the last answer and tells how many answers were right.
func Score(req *models.Request) *models.Response {
	if !quiz.IsChoice(req.Slot(SlotAnswer3)) {
		return reprompt(req, StateQuestion3)
	}
	return reply(req, quiz.Verdict(quiz.Grade(slots(req))))
}

// Grade returns the number of correct answers in a score request.
// ok is false when Score would re-prompt instead of scoring.
func Grade(req *models.Request) (correct, total int, ok bool) {
	if !quiz.IsChoice(req.Slot(SlotAnswer3)) {
		return 0, len(quiz.Key), false
	}
	return quiz.Grade(slots(req)), len(quiz.Key), true
}

// reprompt sends the conversation back to the question being answered.
func reprompt(req *models.Request, state string) *models.Response {
	return &models.Response{
		FSM: &models.FSM{
			State: req.Domain[state],
			Slots: slots(req),
		},
		Answers: []models.Answer{{Text: quiz.Reprompt}},
	}
}

func reply(req *models.Request, text string) *models.Response {
	return &models.Response{
		FSM:     req.FSM,
		Answers: []models.Answer{{Text: text}},
	}
}

func slots(req *models.Request) map[string]string {
	if req.FSM == nil {
		return nil
	}
	return req.FSM.Slots
}
