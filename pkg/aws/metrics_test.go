package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
)

type fakeMetricsAPI struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeMetricsAPI) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestPutMetric_SendsNamespaceAndDimensions(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := &MetricsClient{client: api, namespace: "Vendora", enabled: true}

	err := m.PutMetric(context.Background(), MetricHTTPRequests, 1, types.StandardUnitCount,
		map[string]string{"Service": "cart-service"})

	assert.NoError(t, err)
	assert.Len(t, api.inputs, 1)
	assert.Equal(t, "Vendora", *api.inputs[0].Namespace)
	datum := api.inputs[0].MetricData[0]
	assert.Equal(t, MetricHTTPRequests, *datum.MetricName)
	assert.Equal(t, float64(1), *datum.Value)
	assert.Len(t, datum.Dimensions, 1)
	assert.Equal(t, "Service", *datum.Dimensions[0].Name)
	assert.Equal(t, "cart-service", *datum.Dimensions[0].Value)
}

func TestPutMetric_DisabledIsNoOp(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := &MetricsClient{client: api, namespace: "Vendora", enabled: false}

	err := m.PutMetric(context.Background(), MetricHTTPRequests, 1, types.StandardUnitCount, nil)

	assert.NoError(t, err)
	assert.Empty(t, api.inputs)
}

func TestRecordLatency_ConvertsToMilliseconds(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := &MetricsClient{client: api, namespace: "Vendora", enabled: true}

	err := m.RecordLatency(context.Background(), MetricHTTPLatency, 250*time.Millisecond, nil)

	assert.NoError(t, err)
	datum := api.inputs[0].MetricData[0]
	assert.Equal(t, float64(250), *datum.Value)
	assert.Equal(t, types.StandardUnitMilliseconds, datum.Unit)
}

func TestIsEnabled_NilClient(t *testing.T) {
	var m *MetricsClient
	assert.False(t, m.IsEnabled())
}
