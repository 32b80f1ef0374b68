package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_LabelsAndSkips(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware("/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/projects/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/projects/:id", "404"))
	skipped := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	unmatched := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	for _, target := range []string{"/v1/projects/a", "/v1/projects/b", "/health", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/projects/:id", "404")))
	assert.Equal(t, skipped, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/health", "200")))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestAsynqMetricsMiddleware_CountsResults(t *testing.T) {
	const taskType = "test:metrics"
	handler := AsynqMetricsMiddleware()(asynq.HandlerFunc(func(_ context.Context, task *asynq.Task) error {
		if string(task.Payload()) == "fail" {
			return errors.New("boom")
		}
		return nil
	}))

	okBefore := testutil.ToFloat64(taskProcessedTotal.WithLabelValues(taskType, "ok"))
	errBefore := testutil.ToFloat64(taskProcessedTotal.WithLabelValues(taskType, "error"))

	assert.NoError(t, handler.ProcessTask(context.Background(), asynq.NewTask(taskType, []byte("ok"))))
	assert.Error(t, handler.ProcessTask(context.Background(), asynq.NewTask(taskType, []byte("fail"))))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(taskProcessedTotal.WithLabelValues(taskType, "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(taskProcessedTotal.WithLabelValues(taskType, "error")))
	assert.Zero(t, testutil.ToFloat64(taskInProgress.WithLabelValues(taskType)))
}

func TestContentFallbackCounter(t *testing.T) {
	before := testutil.ToFloat64(contentFallbackTotal.WithLabelValues("about", ReasonError))
	ContentFallback("about", ReasonError)
	assert.Equal(t, before+1, testutil.ToFloat64(contentFallbackTotal.WithLabelValues("about", ReasonError)))
}
