// Package tui runs forms in a terminal. Factory creates prompt-backed
// widgets; Session walks them with a PromptDriver (survey/v2 by default),
// submits, reports messages and re-prompts only the invalid fields until the
// form is accepted.
package tui
