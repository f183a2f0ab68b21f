package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsSubmissions(t *testing.T) {
	rec := New()

	rec.SubmissionStarted("list")
	require.Equal(t, 1.0, testutil.ToFloat64(rec.inFlight.WithLabelValues("list")))

	rec.SubmissionFinished("list", "success", 20*time.Millisecond)
	rec.SubmissionIgnored("list")
	rec.OptionsLoaded("specific", "error")

	require.Equal(t, 0.0, testutil.ToFloat64(rec.inFlight.WithLabelValues("list")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.submissions.WithLabelValues("list", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.rejected.WithLabelValues("list")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.optionLoads.WithLabelValues("specific", "error")))
	require.Equal(t, 1, testutil.CollectAndCount(rec.duration))
}
