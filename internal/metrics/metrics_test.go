package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("list_conversations", "200"))
	failedBefore := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("list_conversations", "error"))

	RecordAPIRequest("list_conversations", http.StatusOK, 0.02)
	RecordAPIRequest("list_conversations", 0, 0.5)

	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("list_conversations", "200")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("list_conversations", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordUserSearch("skipped")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "afrilance_web_user_searches_total"))
}
