package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"merchdash/internal/models"
	"merchdash/internal/pagination"

	"github.com/AlecAivazis/survey/v2"
)

const (
	actPrevious = "Previous page"
	actNext     = "Next page"
	actGoTo     = "Go to page"
	actPageSize = "Page size"
	actRetry    = "Retry"
	actRefresh  = "Refresh"
	actBack     = "Back"

	otherPage = "Other..."
)

// pagerActions lists the paging moves d allows.
func pagerActions(d pagination.Descriptor) []string {
	var out []string
	if d.HasPrevious() {
		out = append(out, actPrevious)
	}
	if d.HasNext() {
		out = append(out, actNext)
	}
	if len(d.Tokens()) > 0 {
		out = append(out, actGoTo)
	}
	return out
}

// reloadAction is Retry after a failed fetch and Refresh otherwise.
func reloadAction(failed bool) string {
	if failed {
		return actRetry
	}
	return actRefresh
}

// pageOptions returns the one-based labels of the pages in the window other
// than the current one, followed by a free-entry option when pages are hidden
// behind an ellipsis.
func pageOptions(d pagination.Descriptor) []string {
	var out []string
	hidden := false
	for _, tok := range d.Tokens() {
		if tok.Ellipsis {
			hidden = true
			continue
		}
		if tok.Page == d.Page {
			continue
		}
		out = append(out, tok.Label(pagination.OneBased))
	}
	if hidden {
		out = append(out, otherPage)
	}
	return out
}

// parsePage converts a one-based page label to a zero-based index within d.
func parsePage(label string, d pagination.Descriptor) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, errors.New("please enter a page number")
	}
	if n < 1 || n > d.TotalPages() {
		return 0, fmt.Errorf("page must be between 1 and %d", d.TotalPages())
	}
	return n - 1, nil
}

func pageValidator(d pagination.Descriptor) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		_, err := parsePage(s, d)
		return err
	}
}

// askPage lets the user pick a page of d and returns its zero-based index.
func (e Env) askPage(d pagination.Descriptor) (int, error) {
	choice, err := e.choose("Go to page:", pageOptions(d))
	if err != nil {
		return 0, err
	}
	if choice == otherPage {
		choice, err = e.input(
			fmt.Sprintf("Enter page (1-%d):", d.TotalPages()),
			strconv.Itoa(d.Page+1),
			pageValidator(d),
		)
		if err != nil {
			return 0, err
		}
	}
	return parsePage(choice, d)
}

func pageSizeOptions() []string {
	out := make([]string, len(pagination.PageSizes))
	for i, n := range pagination.PageSizes {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func (e Env) askPageSize(current int) (int, error) {
	answer, err := e.pick(promptSelect("Rows per page:", pageSizeOptions(), strconv.Itoa(current)))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// promptSelect builds a select whose default is used only when it is one of
// the options.
func promptSelect(message string, options []string, def string) *survey.Select {
	s := &survey.Select{Message: message, Options: options, PageSize: 12}
	for _, o := range options {
		if o == def {
			s.Default = def
			break
		}
	}
	return s
}

func dateValidator(ans interface{}) error {
	s, _ := ans.(string)
	if _, err := time.Parse(models.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("please enter a date as %s", models.DateLayout)
	}
	return nil
}

// askDateRange asks for a start and end date, defaulting to current, until
// the range is valid.
func (e Env) askDateRange(current models.DateRange) (models.DateRange, error) {
	for {
		r, err := e.askDates(current)
		if err != nil {
			return models.DateRange{}, err
		}
		if err = r.Validate(); err == nil {
			return r, nil
		}
		e.View.Error(err.Error())
	}
}

func (e Env) askDates(current models.DateRange) (models.DateRange, error) {
	qs := []*survey.Question{
		{
			Name:     "start",
			Prompt:   &survey.Input{Message: "Start date (YYYY-MM-DD):", Default: current.StartDate()},
			Validate: dateValidator,
		},
		{
			Name:     "end",
			Prompt:   &survey.Input{Message: "End date (YYYY-MM-DD):", Default: current.EndDate()},
			Validate: dateValidator,
		},
	}
	answers := struct {
		Start string
		End   string
	}{}
	if err := e.prompter().Ask(qs, &answers); err != nil {
		return models.DateRange{}, err
	}
	start, _ := time.Parse(models.DateLayout, strings.TrimSpace(answers.Start))
	end, _ := time.Parse(models.DateLayout, strings.TrimSpace(answers.End))
	return models.DateRange{Start: start, End: end}, nil
}

func positiveInt(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("please enter a positive number")
	}
	return nil
}
