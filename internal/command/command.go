package command

import (
	"context"
	"errors"
	"time"

	"merchdash/internal/metrics"
	"merchdash/internal/view"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sirupsen/logrus"
)

type Command interface {
	Name() string
	Synopsis() string
	Execute() error
}

// Prompter asks the user questions. SurveyPrompter is the terminal
// implementation; tests script the answers.
type Prompter interface {
	Ask(qs []*survey.Question, response interface{}) error
	AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

type SurveyPrompter struct{}

func (SurveyPrompter) Ask(qs []*survey.Question, response interface{}) error {
	return survey.Ask(qs, response)
}

func (SurveyPrompter) AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, opts...)
}

// Env carries the dependencies every dashboard view shares.
type Env struct {
	Ctx    context.Context
	View   *view.Renderer
	Prompt Prompter
	Stats  *metrics.FetchStats
	Log    *logrus.Entry
	Now    func() time.Time
}

func (e Env) context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) prompter() Prompter {
	if e.Prompt == nil {
		return SurveyPrompter{}
	}
	return e.Prompt
}

// choose asks for one of options.
func (e Env) choose(message string, options []string) (string, error) {
	return e.pick(&survey.Select{Message: message, Options: options, PageSize: 12})
}

func (e Env) pick(s *survey.Select) (string, error) {
	var answer string
	err := e.prompter().AskOne(s, &answer)
	return answer, err
}

// input asks for free text, validated by v when it is not nil.
func (e Env) input(message, def string, v survey.Validator) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if v != nil {
		opts = append(opts, survey.WithValidator(v))
	}
	err := e.prompter().AskOne(&survey.Input{
		Message: message,
		Default: def,
	}, &answer, opts...)
	return answer, err
}

// settle records a fetch failure in the log. The page snapshot already holds
// the message shown to the user.
func (e Env) settle(what string, err error) {
	if err == nil || e.Log == nil {
		return
	}
	e.Log.WithError(err).Debugf("%s failed", what)
}

// ignorable reports whether a prompt error only cancels the pending action.
func ignorable(err error) bool {
	return errors.Is(err, terminal.InterruptErr)
}

// leave reports whether a prompt error ends the current view. An interrupt
// leaves the view quietly.
func leave(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, terminal.InterruptErr) {
		return true, nil
	}
	return true, err
}
