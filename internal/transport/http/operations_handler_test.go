package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipphillips/federal-employment-analysis/internal/operations"
)

const testSnapshotData = "agency|count|annualized_adjusted_basic_pay|duty_station_state|snapshot_yyyymm\n" +
	"TREASURY|100|90000|MARYLAND|202503\n"

func newOperationsServer(t *testing.T) (*httptest.Server, *operations.Manager) {
	t.Helper()

	dir := t.TempDir()
	rawFile := filepath.Join(dir, "employment.csv")
	require.NoError(t, os.WriteFile(rawFile, []byte(testSnapshotData), 0644))

	manager := operations.NewManager(operations.ManagerConfig{
		RawFile:     rawFile,
		OutDir:      filepath.Join(dir, "processed"),
		TopAgencies: 50,
		Timeout:     time.Minute,
	}, nil, nil)

	handler := NewOperationsHandler(manager, nil)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server, manager
}

func waitForCompletion(t *testing.T, manager *operations.Manager, id string) operations.OperationView {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		view, ok := manager.Snapshot(id)
		require.True(t, ok)
		if view.Status == operations.OperationStatusCompleted ||
			view.Status == operations.OperationStatusFailed {
			return view
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("operation did not finish in time")
	return operations.OperationView{}
}

func TestStartOperation(t *testing.T) {
	server, manager := newOperationsServer(t)

	res, err := http.Post(server.URL+"/", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	var view operations.OperationView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	require.NotEmpty(t, view.ID)
	assert.Len(t, view.Steps, 4)

	final := waitForCompletion(t, manager, view.ID)
	assert.Equal(t, operations.OperationStatusCompleted, final.Status)
}

func TestStartOperationInvalidBody(t *testing.T) {
	server, _ := newOperationsServer(t)

	res, err := http.Post(server.URL+"/", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetOperation(t *testing.T) {
	server, manager := newOperationsServer(t)

	op, err := manager.Run(context.Background(), operations.OperationRequest{})
	require.NoError(t, err)

	t.Run("known operation", func(t *testing.T) {
		res, err := http.Get(server.URL + "/" + op.ID)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var view operations.OperationView
		require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
		assert.Equal(t, op.ID, view.ID)
		assert.Equal(t, operations.OperationStatusCompleted, view.Status)
	})

	t.Run("unknown operation is 404", func(t *testing.T) {
		res, err := http.Get(server.URL + "/unknown-id")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestListOperations(t *testing.T) {
	server, manager := newOperationsServer(t)

	_, err := manager.Run(context.Background(), operations.OperationRequest{})
	require.NoError(t, err)

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Operations []operations.OperationView `json:"operations"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Len(t, body.Operations, 1)
}
