package command

import (
	"errors"
	"net/url"
	"strings"

	cfg "merchdash/internal/config"

	"github.com/AlecAivazis/survey/v2"
)

type CollectArgsCommand struct {
	Prompt Prompter
}

func (c *CollectArgsCommand) Name() string {
	return "collect-args"
}

func (c *CollectArgsCommand) Synopsis() string {
	return "Collect missing arguments interactively"
}

func (c *CollectArgsCommand) Execute() error {
	questions := []*survey.Question{}

	if cfg.GetConfig().GetAPIURL() == "" {
		questions = append(questions, &survey.Question{
			Name: "apiurl",
			Prompt: &survey.Input{
				Default: cfg.DefaultAPIURL,
				Message: "Enter the analytics API base URL:",
			},
			Validate: validateBaseURL,
		})
	}

	if len(questions) == 0 {
		return nil
	}

	answers := struct {
		APIURL string `survey:"apiurl"`
	}{}

	prompt := c.Prompt
	if prompt == nil {
		prompt = SurveyPrompter{}
	}
	if err := prompt.Ask(questions, &answers); err != nil {
		return err
	}

	cfg.GetConfig().SetAPIURL(strings.TrimSpace(answers.APIURL))
	return nil
}

func validateBaseURL(ans interface{}) error {
	s, _ := ans.(string)
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("please enter an http(s) URL")
	}
	return nil
}
