package chi

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
)

// --- Mocks ---

type mockLookup struct {
	results []result.Result
	bulk    map[string][]result.Result
	err     error

	gotReq   request.Request
	gotTexts []string
	gotBulk  request.Params
	calls    int
}

func (m *mockLookup) Lookup(_ context.Context, req request.Request) ([]result.Result, error) {
	m.calls++
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockLookup) BulkLookup(
	_ context.Context, texts []string, p request.Params,
) (map[string][]result.Result, error) {
	m.calls++
	m.gotTexts = texts
	m.gotBulk = p
	if m.err != nil {
		return nil, m.err
	}
	return m.bulk, nil
}

type mockSynonyms struct {
	docs      map[string]json.RawMessage
	err       error
	gotCuries []string
}

func (m *mockSynonyms) Lookup(_ context.Context, curies []string) (map[string]json.RawMessage, error) {
	m.gotCuries = curies
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mockStatus struct {
	report statusuc.Report
	err    error
}

func (m *mockStatus) Status(_ context.Context) (statusuc.Report, error) {
	return m.report, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }
