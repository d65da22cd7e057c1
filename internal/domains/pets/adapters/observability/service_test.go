package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	petsmemory "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application"
	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
)

func ptr[T any](v T) *T { return &v }

func addInput(id int64, name string) pettypes.AddPetInput {
	return pettypes.AddPetInput{PetMutationInput: pettypes.PetMutationInput{ID: id, Name: ptr(name)}}
}

func sums(t *testing.T, reader *sdkmetric.ManualReader, name, key string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is %T", name, m.Data)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestService_ClassifiesRejectionsAndTracksCatalog(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	svc := New(petsapp.NewService(petsmemory.NewRepository()),
		WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	ctx := context.Background()

	_, err := svc.AddPet(ctx, addInput(1, "Buddy"))
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, addInput(2, "Rex"))
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, addInput(1, "Buddy II"))
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, addInput(3, ""))
	require.ErrorIs(t, err, petsapp.ErrInvalidInput)
	_, err = svc.GetByID(ctx, pettypes.PetIdentifier{ID: 99})
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: 2}))
	require.NoError(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: 99}))

	assert.Equal(t, map[string]int64{"ok": 5, "rejected": 2}, sums(t, reader, "pets.operations", "outcome"))
	assert.Equal(t, map[string]int64{"": 1}, sums(t, reader, "pets.catalog.size", "none"))

	for _, span := range spans.Ended() {
		assert.NotEqual(t, codes.Error, span.Status().Code, span.Name())
	}
}

func TestService_ResetMovesCatalogToSeedSize(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	svc := New(petsapp.NewService(petsmemory.NewRepository()), WithMeter(mp.Meter("test")))
	ctx := context.Background()

	_, err := svc.AddPet(ctx, addInput(1, "Buddy"))
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, []pettypes.AddPetInput{addInput(10, "A"), addInput(11, "B"), addInput(12, "C")}))

	assert.Equal(t, map[string]int64{"": 3}, sums(t, reader, "pets.catalog.size", "none"))
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ports.ErrNotFound))
	assert.True(t, IsRejection(petsapp.ErrInvalidStatusFilter))
	assert.False(t, IsRejection(context.DeadlineExceeded))
	assert.False(t, IsRejection(nil))
}
