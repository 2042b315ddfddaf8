package amfi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"advisor/src/clients/amfi"
	"advisor/src/config"
	"advisor/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const advisorPage = `<html><body><table>
<tr><th>Sr</th><th>ARN</th><th>Name</th><th>Address</th><th>Phone</th><th>Email</th></tr>
<tr><td>1</td><td> ARN-87216 </td><td>Test Advisor</td><td>Mumbai</td><td>123</td><td>
  tnageshgupta@yahoo.com
</td></tr>
</table></body></html>`

const emptyPage = `<html><body><table>
<tr><th>Sr</th><th>ARN</th></tr>
<tr><td colspan="6">No records found</td></tr>
</table></body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *amfi.AMFIServiceClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.ExternalClients.AMFI.URL = ts.URL
	cfg.ExternalClients.AMFI.Timeout = 2 * time.Second
	cfg.ExternalClients.AMFI.CacheTTL = time.Minute
	cfg.ExternalClients.AMFI.MaxRetries = 2
	cfg.ExternalClients.AMFI.RetryBase = 5 * time.Millisecond
	return amfi.NewClient(cfg, utils.NewMemoryCacheHandler())
}

func TestPadARN(t *testing.T) {
	assert.Equal(t, "0000", amfi.PadARN(0))
	assert.Equal(t, "0069", amfi.PadARN(69))
	assert.Equal(t, "0123", amfi.PadARN(123))
	assert.Equal(t, "87216", amfi.PadARN(87216))
}

func TestLookupARNFound(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "0069", r.PostForm.Get("nfaARN"))
		assert.Equal(t, "All", r.PostForm.Get("nfaType"))
		fmt.Fprint(w, advisorPage)
	})

	details, err := client.LookupARN(context.Background(), 69)
	require.NoError(t, err)
	assert.Equal(t, "ARN-87216", details.ARN)
	assert.Equal(t, "tnageshgupta@yahoo.com", details.Email)

	// second lookup is served from the cache
	_, err = client.LookupARN(context.Background(), 69)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupARNNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, emptyPage)
	})

	_, err := client.LookupARN(context.Background(), 54321)
	assert.True(t, errors.Is(err, amfi.ErrARNNotFound))
}

func TestLookupARNUpstreamFailure(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.LookupARN(context.Background(), 87216)
	require.Error(t, err)
	var httpErr *utils.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Equal(t, "Failed to retrieve data. Status code: 503", httpErr.Message)
	// one attempt plus two retries
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestLookupARNRecoversAfterServerError(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, advisorPage)
	})

	details, err := client.LookupARN(context.Background(), 87216)
	require.NoError(t, err)
	assert.Equal(t, "tnageshgupta@yahoo.com", details.Email)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLookupARNClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.LookupARN(context.Background(), 87216)
	require.Error(t, err)
	assert.Equal(t, "Failed to retrieve data. Status code: 403", err.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestParseAdvisorTableWithoutRows(t *testing.T) {
	_, err := amfi.ParseAdvisorTable("<html><body><p>maintenance</p></body></html>")
	assert.True(t, errors.Is(err, amfi.ErrARNNotFound))
}
