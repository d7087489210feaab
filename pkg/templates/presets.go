package templates

import (
	"github.com/goliatone/go-calcform/pkg/model"
)

func float(v float64) *float64 { return &v }

// Tip describes the bill/tip/split calculator.
func Tip() []model.Field {
	return []model.Field{
		{
			Name:        "amount",
			Kind:        model.KindNumber,
			Label:       "Bill amount",
			Required:    true,
			Constraints: model.Constraints{Step: float(0.01), Min: float(0), Placeholder: "0.00"},
			Rules:       []model.Rule{model.Min(0)},
		},
		{
			Name:        "percent",
			Kind:        model.KindNumber,
			Label:       "Tip %",
			Required:    true,
			Default:     15,
			Constraints: model.Constraints{Step: float(1), Min: float(0), Max: float(100)},
			Rules:       []model.Rule{model.Min(0), model.Max(100)},
		},
		{
			Name:        "people",
			Kind:        model.KindNumber,
			Label:       "Split between",
			Default:     1,
			Constraints: model.Constraints{Step: float(1), Min: float(1)},
			Rules:       []model.Rule{model.Min(1), model.Custom(PredicateInteger, IsInteger, "Number of people must be a whole number")},
		},
	}
}

// Financial describes a loan/interest calculator.
func Financial() []model.Field {
	return []model.Field{
		{
			Name:        "principal",
			Kind:        model.KindNumber,
			Label:       "Principal",
			Required:    true,
			Constraints: model.Constraints{Step: float(0.01), Min: float(0)},
			Rules:       []model.Rule{model.Min(0.01)},
		},
		{
			Name:        "rate",
			Kind:        model.KindNumber,
			Label:       "Annual interest rate (%)",
			Required:    true,
			Default:     5,
			Constraints: model.Constraints{Step: float(0.01), Min: float(0), Max: float(100)},
			Rules:       []model.Rule{model.Min(0), model.Max(100)},
		},
		{
			Name:        "years",
			Kind:        model.KindNumber,
			Label:       "Term (years)",
			Required:    true,
			Default:     30,
			Constraints: model.Constraints{Step: float(1), Min: float(1), Max: float(50)},
			Rules:       []model.Rule{model.Min(1), model.Max(50), model.Custom(PredicateInteger, IsInteger, "Term must be a whole number of years")},
		},
		{
			Name:    "compounding",
			Kind:    model.KindSelect,
			Label:   "Compounding",
			Default: "monthly",
			Options: []model.Option{
				{Value: "monthly", Label: "Monthly"},
				{Value: "quarterly", Label: "Quarterly"},
				{Value: "yearly", Label: "Yearly"},
			},
		},
	}
}

// UnitConverter describes a value plus from/to unit selects. The units are
// shared by both selects.
func UnitConverter(units []model.Option) []model.Field {
	from := append([]model.Option(nil), units...)
	to := append([]model.Option(nil), units...)

	var fromDefault, toDefault any
	if len(units) > 0 {
		fromDefault = units[0].Value
		toDefault = units[len(units)-1].Value
	}

	return []model.Field{
		{
			Name:     "value",
			Kind:     model.KindNumber,
			Label:    "Value",
			Required: true,
			Rules:    []model.Rule{model.Custom(PredicateNumber, IsNumber, "Value must be a number")},
		},
		{Name: "from", Kind: model.KindSelect, Label: "From", Required: true, Options: from, Default: fromDefault},
		{Name: "to", Kind: model.KindSelect, Label: "To", Required: true, Options: to, Default: toDefault},
	}
}

// LengthUnits are the default options for the length converter.
func LengthUnits() []model.Option {
	return []model.Option{
		{Value: "mm", Label: "Millimeters"},
		{Value: "cm", Label: "Centimeters"},
		{Value: "m", Label: "Meters"},
		{Value: "km", Label: "Kilometers"},
		{Value: "in", Label: "Inches"},
		{Value: "ft", Label: "Feet"},
		{Value: "mi", Label: "Miles"},
	}
}

// BMI describes the body mass index calculator.
func BMI() []model.Field {
	return []model.Field{
		{
			Name:     "unit",
			Kind:     model.KindSelect,
			Label:    "Units",
			Required: true,
			Default:  "metric",
			Options: []model.Option{
				{Value: "metric", Label: "Metric"},
				{Value: "imperial", Label: "Imperial"},
			},
		},
		{
			Name:        "weight",
			Kind:        model.KindNumber,
			Label:       "Weight",
			Help:        "Kilograms for metric, pounds for imperial",
			Required:    true,
			Constraints: model.Constraints{Step: float(0.1), Min: float(1)},
			Rules:       []model.Rule{model.Min(1), model.Max(700)},
		},
		{
			Name:        "height",
			Kind:        model.KindNumber,
			Label:       "Height",
			Help:        "Centimeters for metric, inches for imperial",
			Required:    true,
			Constraints: model.Constraints{Step: float(0.1), Min: float(1)},
			Rules:       []model.Rule{model.Min(1), model.Max(300)},
		},
	}
}

// FreeText describes a text transformation tool (case conversion, counting).
func FreeText() []model.Field {
	return []model.Field{
		{
			Name:        "text",
			Kind:        model.KindTextarea,
			Label:       "Text",
			Required:    true,
			Constraints: model.Constraints{Rows: 8, Placeholder: "Paste or type text"},
			Rules:       []model.Rule{model.MaxLengthRule{Length: 100000}},
		},
		{
			Name:    "mode",
			Kind:    model.KindSelect,
			Label:   "Transform",
			Default: "upper",
			Options: []model.Option{
				{Value: "upper", Label: "UPPERCASE"},
				{Value: "lower", Label: "lowercase"},
				{Value: "title", Label: "Title Case"},
				{Value: "count", Label: "Count words"},
			},
		},
	}
}

// PasswordGenerator describes the password generation parameters.
func PasswordGenerator() []model.Field {
	return []model.Field{
		{
			Name:        "length",
			Kind:        model.KindRange,
			Label:       "Length",
			Required:    true,
			Default:     16,
			Constraints: model.Constraints{Step: float(1), Min: float(4), Max: float(128)},
			Rules: []model.Rule{
				model.Min(4),
				model.Max(128),
				model.Custom(PredicateInteger, IsInteger, "Length must be a whole number"),
			},
		},
		{Name: "uppercase", Kind: model.KindCheckbox, Label: "Uppercase letters", Default: true},
		{Name: "lowercase", Kind: model.KindCheckbox, Label: "Lowercase letters", Default: true},
		{Name: "digits", Kind: model.KindCheckbox, Label: "Digits", Default: true},
		{Name: "symbols", Kind: model.KindCheckbox, Label: "Symbols", Default: false},
		{
			Name:  "exclude",
			Kind:  model.KindText,
			Label: "Exclude characters",
			Rules: []model.Rule{model.MaxLengthRule{Length: 64}},
		},
	}
}

// Percentage describes "what is X% of Y".
func Percentage() []model.Field {
	return []model.Field{
		{Name: "percent", Kind: model.KindNumber, Label: "Percent", Required: true, Rules: []model.Rule{model.Custom(PredicateNumber, IsNumber, "Percent must be a number")}},
		{Name: "of", Kind: model.KindNumber, Label: "Of", Required: true, Rules: []model.Rule{model.Custom(PredicateNumber, IsNumber, "Value must be a number")}},
	}
}

// Temperature describes a temperature converter. The lower bound is absolute
// zero on the Fahrenheit scale, the lowest of the supported scales.
func Temperature() []model.Field {
	fields := UnitConverter([]model.Option{
		{Value: "C", Label: "Celsius"},
		{Value: "F", Label: "Fahrenheit"},
		{Value: "K", Label: "Kelvin"},
	})
	fields[0].Label = "Temperature"
	fields[0].Rules = []model.Rule{model.Min(-459.67, "Temperature is below absolute zero")}
	return fields
}
