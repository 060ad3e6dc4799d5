package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualUnwrapsEnvelopeAndIgnoresKeys(t *testing.T) {
	goBody := []byte(`{"data":[{"id":"c1","content":"hello","createdAt":"2025-03-10T08:00:00Z","score":17.0}]}`)
	legacyBody := []byte(`[{"id":"c1","content":"hello","createdAt":"2025-03-10T08:00:00.123Z","score":17}]`)

	assert.False(t, bodiesEqual(unwrapEnvelope(goBody), legacyBody, nil))
	assert.True(t, bodiesEqual(unwrapEnvelope(goBody), legacyBody, []string{"createdAt"}))
	assert.False(t, bodiesEqual(unwrapEnvelope(goBody), []byte(`[{"id":"c2"}]`), []string{"createdAt"}))
}

func TestUnwrapEnvelopeLeavesPlainBodies(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(unwrapEnvelope([]byte(`[1,2]`))))
	assert.Equal(t, `{"error":"x"}`, string(unwrapEnvelope([]byte(`{"error":"x"}`))))
}

func TestCompareForwardsTokenAndKeepsOrder(t *testing.T) {
	var seen []string
	handler := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Header.Get("Authorization"))
			if r.URL.Path == "/tutor/children/x/timeline" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(body))
		}
	}
	goSrv := httptest.NewServer(handler(`{"data":{"children":[]}}`))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(handler(`{"children":[]}`))
	defer legacySrv.Close()

	cmp := &comparer{client: goSrv.Client(), goBase: goSrv.URL, legacyBase: legacySrv.URL, token: "tok"}
	results := cmp.run(context.Background(), []target{
		{Method: "GET", Path: "/tutor/dashboard", Critical: true},
		{Method: "GET", Path: "tutor/children/x/timeline", Critical: true},
	}, 1)

	require.Len(t, results, 2)
	assert.True(t, results[0].StatusMatch)
	assert.True(t, results[0].BodyMatch)
	assert.Equal(t, http.StatusForbidden, results[1].GoStatus)
	assert.True(t, results[1].BodyMatch)
	for _, header := range seen {
		assert.Equal(t, "Bearer tok", header)
	}

	breaking, optional := tally(results)
	assert.Zero(t, breaking)
	assert.Zero(t, optional)
}

func TestTallyCountsErrorsOnlyWhenCritical(t *testing.T) {
	breaking, optional := tally([]comparison{
		{Target: target{Critical: true}, Error: errors.New("timeout")},
		{Target: target{Critical: false}, Error: errors.New("timeout")},
		{Target: target{Critical: false}, StatusMatch: true},
		{Target: target{Critical: true}, StatusMatch: true, BodyMatch: true},
	})
	assert.Equal(t, 1, breaking)
	assert.Equal(t, 1, optional)
}
