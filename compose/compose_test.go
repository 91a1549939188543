package compose

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	got, err := Format("Hello", "World")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Hello\n=\nWorld" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatTrimsAndAllowsOneSide(t *testing.T) {
	got, err := Format("  base \n", "")
	if err != nil || got != "base\n=\n" {
		t.Fatalf("Format = %q, %v", got, err)
	}
	got, err = Format("", " addon")
	if err != nil || got != "\n=\naddon" {
		t.Fatalf("Format = %q, %v", got, err)
	}
}

func TestFormatSuppressesEmpty(t *testing.T) {
	for _, in := range [][2]string{{"", ""}, {"  ", "\n"}} {
		if _, err := Format(in[0], in[1]); !errors.Is(err, ErrNothingToCopy) {
			t.Fatalf("Format(%q, %q) err = %v", in[0], in[1], err)
		}
	}
}

func TestBuildTranslation(t *testing.T) {
	tests := []struct {
		name string
		opts TranslationOptions
		want string
	}{
		{
			name: "defaults",
			opts: DefaultTranslationOptions(),
			want: "Translate the following text into English. Make the translation sound natural in the target language. Do not use slang. Do not use abbreviations. Output plain text only.",
		},
		{
			name: "faithful markdown with slang",
			opts: TranslationOptions{TargetLanguage: "Japanese", Register: Faithful, OutputFormat: Markdown, AllowSlang: true},
			want: "Translate the following text into Japanese. Keep the wording as close to the original as possible. Do not use abbreviations. Use Markdown formatting.",
		},
		{
			name: "codeblock everything allowed",
			opts: TranslationOptions{TargetLanguage: "German", Register: Natural, OutputFormat: CodeBlock, AllowSlang: true, AllowAbbreviations: true},
			want: "Translate the following text into German. Make the translation sound natural in the target language. Output the translation inside a Markdown code block.",
		},
		{
			name: "unknown values fall back",
			opts: TranslationOptions{TargetLanguage: "French", Register: "loose", OutputFormat: "html", AllowSlang: true, AllowAbbreviations: true},
			want: "Translate the following text into French. Make the translation sound natural in the target language. Output plain text only.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildTranslation(tt.opts); got != tt.want {
				t.Fatalf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultTranslationOptions().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := []TranslationOptions{
		{TargetLanguage: "", Register: Natural, OutputFormat: Plain},
		{TargetLanguage: "X", Register: "loose", OutputFormat: Plain},
		{TargetLanguage: "X", Register: Natural, OutputFormat: "html"},
	}
	for _, o := range bad {
		if err := o.Validate(); err == nil {
			t.Fatalf("expected %+v to be invalid", o)
		}
	}
}
