package diffview

import (
	"fmt"
)

const (
	DefaultContext  = 3
	ContextStep     = 3
	MinContext      = 3
	CompleteContext = 999999999
)

// Options are the diff controls. Changing them means running the diff again.
type Options struct {
	Context          int  `json:"context"`
	Complete         bool `json:"complete"`
	IgnoreWhitespace bool `json:"ignoreWhitespace"`
}

func NewOptions() *Options {
	return &Options{Context: DefaultContext}
}

func (o *Options) MoreContext() {
	o.Context = o.context() + ContextStep
}

// LessContext reports whether the context changed.
func (o *Options) LessContext() bool {
	if o.context() <= MinContext {
		return false
	}

	o.Context = o.context() - ContextStep
	if o.Context < MinContext {
		o.Context = MinContext
	}
	return true
}

func (o *Options) ToggleComplete() {
	o.Complete = !o.Complete
}

func (o *Options) ToggleIgnoreWhitespace() {
	o.IgnoreWhitespace = !o.IgnoreWhitespace
}

func (o *Options) context() int {
	if o.Context <= 0 {
		return DefaultContext
	}
	return o.Context
}

// Args builds the diff command: base, the context flags, extra, then the files.
func (o *Options) Args(base []string, extra []string, files ...string) []string {
	result := append([]string{}, base...)

	if o.Complete {
		result = append(result, fmt.Sprintf("--unified=%v", CompleteContext))
	} else {
		result = append(result, fmt.Sprintf("--unified=%v", o.context()))
	}

	if o.IgnoreWhitespace {
		result = append(result, "--ignore-all-space", "--ignore-blank-lines")
	}

	result = append(result, extra...)

	if len(files) > 0 {
		result = append(result, "--")
		result = append(result, files...)
	}

	return result
}
