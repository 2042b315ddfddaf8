package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"advisor/src/models"
	"advisor/src/utils"
	"advisor/src/worker"
	"advisor/src/worker/controllers"
	"advisor/src/worker/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRequestLogs struct{}

func (countingRequestLogs) Create(_ context.Context, _ *models.RequestLog) error {
	return nil
}

func (countingRequestLogs) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 7, nil
}

func TestWorkerRoutes(t *testing.T) {
	controller := controllers.NewController(countingRequestLogs{}, 30, utils.NewLogger(utils.ParseLogLevel("error"), false, ""))
	ts := httptest.NewServer(worker.NewServer(handlers.NewHandler(controller)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/request-logs/purge", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.PurgeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.Deleted)
}
