package model

// Rule is one validation check applied to a field value. The set of variants
// is closed; see MinRule, MaxRule, PatternRule, CustomRule, MinLengthRule and
// MaxLengthRule.
type Rule interface {
	// Kind returns the canonical identifier used in template files.
	Kind() string
	// OverrideMessage returns the caller supplied message, if any.
	OverrideMessage() string
	isRule()
}

const (
	RuleMin       = "min"
	RuleMax       = "max"
	RulePattern   = "pattern"
	RuleCustom    = "custom"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
)

// MinRule requires the numeric value to be >= Threshold.
type MinRule struct {
	Threshold float64
	Message   string
}

// MaxRule requires the numeric value to be <= Threshold.
type MaxRule struct {
	Threshold float64
	Message   string
}

// PatternRule requires the raw text to match Expr.
type PatternRule struct {
	Expr    string
	Message string
}

// Predicate reports whether value is valid. A non-nil error signals a defect
// in the predicate itself, not bad input.
type Predicate func(value any) (bool, error)

// CustomRule delegates to an arbitrary predicate. Name identifies the
// predicate in template files and logs.
type CustomRule struct {
	Name      string
	Predicate Predicate
	Message   string
}

// MinLengthRule requires the raw text to hold at least Length runes.
type MinLengthRule struct {
	Length  int
	Message string
}

// MaxLengthRule requires the raw text to hold at most Length runes.
type MaxLengthRule struct {
	Length  int
	Message string
}

func (MinRule) Kind() string       { return RuleMin }
func (MaxRule) Kind() string       { return RuleMax }
func (PatternRule) Kind() string   { return RulePattern }
func (CustomRule) Kind() string    { return RuleCustom }
func (MinLengthRule) Kind() string { return RuleMinLength }
func (MaxLengthRule) Kind() string { return RuleMaxLength }

func (r MinRule) OverrideMessage() string       { return r.Message }
func (r MaxRule) OverrideMessage() string       { return r.Message }
func (r PatternRule) OverrideMessage() string   { return r.Message }
func (r CustomRule) OverrideMessage() string    { return r.Message }
func (r MinLengthRule) OverrideMessage() string { return r.Message }
func (r MaxLengthRule) OverrideMessage() string { return r.Message }

func (MinRule) isRule()       {}
func (MaxRule) isRule()       {}
func (PatternRule) isRule()   {}
func (CustomRule) isRule()    {}
func (MinLengthRule) isRule() {}
func (MaxLengthRule) isRule() {}

// Min is shorthand for a MinRule with an optional override message.
func Min(threshold float64, message ...string) MinRule {
	return MinRule{Threshold: threshold, Message: first(message)}
}

// Max is shorthand for a MaxRule with an optional override message.
func Max(threshold float64, message ...string) MaxRule {
	return MaxRule{Threshold: threshold, Message: first(message)}
}

// Pattern is shorthand for a PatternRule with an optional override message.
func Pattern(expr string, message ...string) PatternRule {
	return PatternRule{Expr: expr, Message: first(message)}
}

// Custom is shorthand for a CustomRule with an optional override message.
func Custom(name string, predicate Predicate, message ...string) CustomRule {
	return CustomRule{Name: name, Predicate: predicate, Message: first(message)}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
