package pages

import (
	"context"
	"encoding/json"
	"sync"
)

// fakeAPI implements api.Client with scripted JSON responses per path.
type apiCall struct {
	method string
	path   string
	body   []byte
}

type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
	errs      map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeAPI) Do(ctx context.Context, method, path string, body, out any) error {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, path: path, body: raw})
	err := f.errs[path]
	resp, ok := f.responses[path]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if ok && out != nil {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeAPI) Get(ctx context.Context, path string, out any) error {
	return f.Do(ctx, "GET", path, nil, out)
}

func (f *fakeAPI) Post(ctx context.Context, path string, body, out any) error {
	return f.Do(ctx, "POST", path, body, out)
}

func (f *fakeAPI) Put(ctx context.Context, path string, body, out any) error {
	return f.Do(ctx, "PUT", path, body, out)
}

func (f *fakeAPI) Delete(ctx context.Context, path string) error {
	return f.Do(ctx, "DELETE", path, nil, nil)
}

func (f *fakeAPI) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.path == path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) setResponse(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = body
}

func (f *fakeAPI) lastCall(path string) (apiCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].path == path {
			return f.calls[i], true
		}
	}
	return apiCall{}, false
}
