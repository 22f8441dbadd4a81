package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/mock"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentSource(t *testing.T) {
	assert := assert.New(t)

	m := New("splunkreleases")
	fail := false
	source := m.InstrumentSource(mock.CatalogSource{
		BuildFn: func(ctx context.Context) (releases.Catalog, error) {
			if fail {
				return nil, errors.New("upstream down")
			}
			return releases.Catalog{{Version: "8.1.0"}, {Version: "8.2.0"}}, nil
		},
	})

	_, err := source.Build(context.Background())
	assert.NoError(err)
	fail = true
	_, err = source.Build(context.Background())
	assert.Error(err)

	assert.Equal(1.0, testutil.ToFloat64(m.buildsTotal.WithLabelValues("success")))
	assert.Equal(1.0, testutil.ToFloat64(m.buildsTotal.WithLabelValues("error")))
	assert.Equal(2.0, testutil.ToFloat64(m.catalogSize))
}

func TestHandler(t *testing.T) {
	assert := assert.New(t)

	m := New("splunkreleases")
	m.ObserveRequest("/details", 200)
	m.ObserveRequest("/details", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if !assert.NoError(err) {
		return
	}
	assert.True(strings.Contains(string(body), `splunkreleases_api_requests_total{code="200",route="/details"} 2`))
}
