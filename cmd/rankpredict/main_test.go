package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-rankpredict/pkg/testsupport"
)

func pointAt(t *testing.T, svc *testsupport.Service) {
	t.Helper()
	t.Setenv("RANKPREDICT_SERVICE_BASE_URL", svc.URL)
	t.Setenv("RANKPREDICT_LOGGING_LEVEL", "error")
	t.Chdir(t.TempDir())
}

func TestRunListText(t *testing.T) {
	svc := testsupport.NewService(t)
	pointAt(t, svc)

	var out bytes.Buffer
	err := run(testsupport.Context(), []string{"-flow", "list", "-set", "rank=15000", "-set", "category=OPEN"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "College Predictor")
	assert.Contains(t, out.String(), "Chance: 72.4% | Cutoff Range: 100 - 6,000 | Year: 2023")
}

func TestRunWritesOutputFile(t *testing.T) {
	svc := testsupport.NewService(t)
	pointAt(t, svc)
	path := filepath.Join(t.TempDir(), "result.html")

	var out bytes.Buffer
	err := run(testsupport.Context(), []string{"-flow", "specific", "-format", "html", "-output", path, "-set", "rank=15000"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Result written to "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Low Chance")
}

func TestRunServiceErrorStillRenders(t *testing.T) {
	svc := testsupport.NewService(t)
	svc.Reply("POST /api/predict", http.StatusInternalServerError, `{"error":"Server is not ready, model not loaded."}`)
	pointAt(t, svc)

	var out bytes.Buffer
	err := run(testsupport.Context(), []string{"-set", "rank=1", "-format", "json"}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), `"error":"Server is not ready, model not loaded."`)
}

func TestRunRejectsBadFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(testsupport.Context(), []string{"-flow", "bulk"}, &out))
	assert.Error(t, run(testsupport.Context(), []string{"-set", "rank"}, &out))
}
