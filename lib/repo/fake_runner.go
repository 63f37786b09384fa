package repo

import (
	"context"
	"sync"
)

// FakeRunner answers scripted results keyed by the command line. Commands
// without a script succeed with empty output.
type FakeRunner struct {
	mutex    sync.Mutex
	results  map[string]*Result
	errors   map[string]error
	requests []Request
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results: map[string]*Result{},
		errors:  map[string]error{},
	}
}

func (f *FakeRunner) On(result *Result, args ...string) *FakeRunner {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.results[joinArgs(args)] = result
	return f
}

func (f *FakeRunner) OnStdout(stdout string, args ...string) *FakeRunner {
	return f.On(&Result{Stdout: stdout}, args...)
}

func (f *FakeRunner) OnError(err error, args ...string) *FakeRunner {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.errors[joinArgs(args)] = err
	return f
}

func (f *FakeRunner) Run(_ context.Context, req Request) (*Result, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.requests = append(f.requests, req)

	key := joinArgs(req.Args)
	if err, ok := f.errors[key]; ok {
		return nil, err
	}
	if result, ok := f.results[key]; ok {
		c := *result
		return &c, nil
	}
	return &Result{}, nil
}

func (f *FakeRunner) Requests() []Request {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	result := make([]Request, len(f.requests))
	copy(result, f.requests)
	return result
}

// Commands returns the command lines received, in order.
func (f *FakeRunner) Commands() []string {
	var result []string
	for _, r := range f.Requests() {
		result = append(result, joinArgs(r.Args))
	}
	return result
}

func (f *FakeRunner) Reset() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.requests = nil
}
