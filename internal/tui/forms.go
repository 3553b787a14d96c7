package tui

import (
	"strings"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formNewUser
	formSavings
	formAddFixed
	formEditFixed
	formAddVariable
	formEditVariable
)

// formValues is the target of every huh field. It is heap allocated per
// form so copies of App keep writing to the same values.
type formValues struct {
	name     string
	income   string
	savings  string
	category string
	amount   string
	date     string
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(c.String(), c.String())
	}
	return opts
}

// newUserForm asks for everything needed to create a user.
func newUserForm(vals *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgie").
				Description("Create a profile to start tracking your monthly budget."),
			huh.NewInput().
				Title("Name").
				Value(&vals.name).
				Validate(validateName),
			huh.NewInput().
				Title("Monthly income").
				Placeholder("0.00").
				Value(&vals.income).
				Validate(validateIncome),
			huh.NewInput().
				Title("Savings percentage").
				Description("Share of income to set aside, 0-100").
				Placeholder("10").
				Value(&vals.savings).
				Validate(validatePct),
		),
	).WithShowHelp(true)
}

func newSavingsForm(vals *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Savings percentage").
				Description("Share of income to set aside, 0-100").
				Value(&vals.savings).
				Validate(validatePct),
		),
	).WithShowHelp(true)
}

// newExpenseForm edits a category and amount, plus a date for variable
// expenses.
func newExpenseForm(title string, vals *formValues, withDate bool) *huh.Form {
	if vals.category == "" {
		vals.category = model.Categories[0].String()
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title(title).
			Description("Category").
			Options(categoryOptions()...).
			Value(&vals.category),
		huh.NewInput().
			Title("Amount").
			Placeholder("0.00").
			Value(&vals.amount).
			Validate(validateAmount),
	}
	if withDate {
		fields = append(fields, huh.NewInput().
			Title("Date").
			Description("YYYY-MM-DD, empty for today").
			Placeholder(model.Today().String()).
			Value(&vals.date).
			Validate(validateDate))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func validateName(s string) error {
	_, err := model.NormalizeName(s)
	return err
}

func validateIncome(s string) error {
	d, err := model.ParseAmount(s)
	if err != nil {
		return err
	}
	return model.ValidateIncome(d)
}

func validatePct(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseAmount(s)
	return err
}

func validateAmount(s string) error {
	d, err := model.ParseAmount(s)
	if err != nil {
		return err
	}
	return model.ValidateAmount(d)
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseDate(s)
	return err
}
