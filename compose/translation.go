package compose

import (
	"fmt"
	"strings"
)

// Register controls how literal the requested translation is.
type Register string

const (
	Faithful Register = "faithful"
	Natural  Register = "natural"
)

// OutputFormat is the shape the translation should be returned in.
type OutputFormat string

const (
	Plain     OutputFormat = "plain"
	Markdown  OutputFormat = "markdown"
	CodeBlock OutputFormat = "codeblock"
)

// TranslationOptions are the settings of the translation-request template.
type TranslationOptions struct {
	TargetLanguage     string       `json:"targetLanguage" mapstructure:"target_language" yaml:"target_language"`
	Register           Register     `json:"register" mapstructure:"register" yaml:"register"`
	OutputFormat       OutputFormat `json:"outputFormat" mapstructure:"output_format" yaml:"output_format"`
	AllowSlang         bool         `json:"allowSlang" mapstructure:"allow_slang" yaml:"allow_slang"`
	AllowAbbreviations bool         `json:"allowAbbreviations" mapstructure:"allow_abbreviations" yaml:"allow_abbreviations"`
}

// DefaultTranslationOptions mirrors the settings form's initial state.
func DefaultTranslationOptions() TranslationOptions {
	return TranslationOptions{
		TargetLanguage: "English",
		Register:       Natural,
		OutputFormat:   Plain,
	}
}

// Validate rejects register and format values BuildTranslation does not know.
func (o TranslationOptions) Validate() error {
	if strings.TrimSpace(o.TargetLanguage) == "" {
		return fmt.Errorf("target language is required")
	}
	switch o.Register {
	case Faithful, Natural:
	default:
		return fmt.Errorf("unknown register %q (want faithful or natural)", o.Register)
	}
	switch o.OutputFormat {
	case Plain, Markdown, CodeBlock:
	default:
		return fmt.Errorf("unknown output format %q (want plain, markdown or codeblock)", o.OutputFormat)
	}
	return nil
}

// BuildTranslation composes the instruction sentence. Clause order is fixed:
// directive, register, slang, abbreviations, format.
func BuildTranslation(o TranslationOptions) string {
	clauses := []string{
		fmt.Sprintf("Translate the following text into %s.", o.TargetLanguage),
	}

	if o.Register == Faithful {
		clauses = append(clauses, "Keep the wording as close to the original as possible.")
	} else {
		clauses = append(clauses, "Make the translation sound natural in the target language.")
	}

	if !o.AllowSlang {
		clauses = append(clauses, "Do not use slang.")
	}
	if !o.AllowAbbreviations {
		clauses = append(clauses, "Do not use abbreviations.")
	}

	switch o.OutputFormat {
	case Markdown:
		clauses = append(clauses, "Use Markdown formatting.")
	case CodeBlock:
		clauses = append(clauses, "Output the translation inside a Markdown code block.")
	default:
		clauses = append(clauses, "Output plain text only.")
	}

	return strings.Join(clauses, " ")
}
