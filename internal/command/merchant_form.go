package command

import (
	"context"
	"slices"
	"strings"

	"merchdash/internal/fetch"
	"merchdash/internal/forms"
	"merchdash/internal/models"

	"github.com/AlecAivazis/survey/v2"
)

// MerchantWriter is the part of the API client the merchant forms use.
type MerchantWriter interface {
	GetMerchantDetails(ctx context.Context, id string) (*models.MerchantDetails, error)
	CreateMerchant(ctx context.Context, req models.MerchantRequest) (*models.MerchantStats, error)
	UpdateMerchant(ctx context.Context, id string, req models.MerchantRequest) (*models.MerchantStats, error)
}

const defaultMerchantStatus = "active"

type merchantAnswers struct {
	MerchantName       string `survey:"merchantName"`
	BusinessName       string `survey:"businessName"`
	Email              string `survey:"email"`
	Phone              string `survey:"phone"`
	Address            string `survey:"address"`
	RegistrationNumber string `survey:"registrationNumber"`
	Status             string `survey:"status"`
}

func (a merchantAnswers) request() models.MerchantRequest {
	return models.MerchantRequest{
		MerchantName:       strings.TrimSpace(a.MerchantName),
		BusinessName:       strings.TrimSpace(a.BusinessName),
		Email:              strings.TrimSpace(a.Email),
		Phone:              strings.TrimSpace(a.Phone),
		Address:            strings.TrimSpace(a.Address),
		RegistrationNumber: strings.TrimSpace(a.RegistrationNumber),
		Status:             a.Status,
	}
}

type AddMerchantCommand struct {
	Env
	Client MerchantWriter
}

func (c *AddMerchantCommand) Name() string {
	return "add-merchant"
}

func (c *AddMerchantCommand) Synopsis() string {
	return "Register a new merchant"
}

func (c *AddMerchantCommand) Execute() error {
	qs := []*survey.Question{
		{
			Name:     forms.FieldMerchantName,
			Prompt:   &survey.Input{Message: "Merchant name:"},
			Validate: forms.Required("Merchant name is required"),
		},
		{
			Name:     forms.FieldBusinessName,
			Prompt:   &survey.Input{Message: "Business name:"},
			Validate: forms.Required("Business name is required"),
		},
		{
			Name:     forms.FieldEmail,
			Prompt:   &survey.Input{Message: "Email:"},
			Validate: forms.Email(false),
		},
		{
			Name:     forms.FieldPhone,
			Prompt:   &survey.Input{Message: "Phone:"},
			Validate: forms.Phone(false),
		},
		{
			Name:   "address",
			Prompt: &survey.Input{Message: "Address:"},
		},
		{
			Name:   "registrationNumber",
			Prompt: &survey.Input{Message: "Registration number:"},
		},
		{
			Name: forms.FieldStatus,
			Prompt: &survey.Select{
				Message: "Status:",
				Options: models.MerchantStatuses,
				Default: defaultMerchantStatus,
			},
		},
	}

	var answers merchantAnswers
	if err := c.prompter().Ask(qs, &answers); err != nil {
		_, err = leave(err)
		return err
	}

	req := answers.request()
	if req.Status == "" {
		req.Status = defaultMerchantStatus
	}
	if errs := forms.ValidateCreate(req); len(errs) > 0 {
		c.View.Error(errs.Error())
		return nil
	}

	m, err := c.Client.CreateMerchant(c.context(), req)
	if err != nil {
		c.settle("create merchant", err)
		c.View.Error(fetch.ErrorMessage(err))
		return nil
	}
	c.View.MerchantSaved("created", m)
	return nil
}

type EditMerchantCommand struct {
	Env
	Client MerchantWriter
	// ID skips the merchant id prompt when set.
	ID string
}

func (c *EditMerchantCommand) Name() string {
	return "edit-merchant"
}

func (c *EditMerchantCommand) Synopsis() string {
	return "Edit an existing merchant"
}

func (c *EditMerchantCommand) Execute() error {
	id := c.ID
	if id == "" {
		var err error
		id, err = c.input("Merchant ID:", "", forms.Required("Merchant ID is required"))
		if err != nil {
			_, err = leave(err)
			return err
		}
		id = strings.TrimSpace(id)
	}

	ctx := c.context()
	current, err := c.Client.GetMerchantDetails(ctx, id)
	if err != nil {
		c.settle("load merchant", err)
		c.View.Error(fetch.ErrorMessage(err))
		return nil
	}

	saved, err := c.edit(ctx, id, current)
	if err != nil {
		_, err = leave(err)
		return err
	}
	if saved != nil {
		c.View.MerchantSaved("updated", saved)
	}
	return nil
}

// edit prompts with the current values as defaults and submits the update.
// It returns nil without an error when validation or the request failed; the
// reason has been printed.
func (c *EditMerchantCommand) edit(ctx context.Context, id string, current *models.MerchantDetails) (*models.MerchantStats, error) {
	status := current.Status
	if !slices.Contains(models.MerchantStatuses, status) {
		status = defaultMerchantStatus
	}
	qs := []*survey.Question{
		{
			Name:     forms.FieldBusinessName,
			Prompt:   &survey.Input{Message: "Business name:", Default: firstOf(current.BusinessName, current.MerchantName)},
			Validate: forms.Required("Business name is required"),
		},
		{
			Name:     forms.FieldEmail,
			Prompt:   &survey.Input{Message: "Email:", Default: current.Email},
			Validate: forms.Email(true),
		},
		{
			Name:     forms.FieldPhone,
			Prompt:   &survey.Input{Message: "Phone:", Default: current.Phone},
			Validate: forms.Phone(true),
		},
		{
			Name:   "address",
			Prompt: &survey.Input{Message: "Address:", Default: firstOf(current.Address, current.AddressLine1)},
		},
		{
			Name: forms.FieldStatus,
			Prompt: &survey.Select{
				Message: "Status:",
				Options: models.MerchantStatuses,
				Default: status,
			},
		},
	}

	var answers merchantAnswers
	if err := c.prompter().Ask(qs, &answers); err != nil {
		return nil, err
	}

	req := answers.request()
	if errs := forms.ValidateUpdate(req); len(errs) > 0 {
		c.View.Error(errs.Error())
		return nil, nil
	}

	m, err := c.Client.UpdateMerchant(ctx, id, req)
	if err != nil {
		c.settle("update merchant", err)
		c.View.Error(fetch.ErrorMessage(err))
		return nil, nil
	}
	return m, nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
