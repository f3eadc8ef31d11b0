package metrics

import (
	"testing"

	"github.com/aretw0/localsettings/pkg/adapters/memory"
	"github.com/aretw0/localsettings/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentStore(t *testing.T) {
	m := New()
	store := m.InstrumentStore(memory.NewStore())

	ports.RunSettingsStoreContract(t, store)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	ops := map[string]uint64{}
	for _, f := range families {
		if f.GetName() != "localsettings_store_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "op" {
					ops[l.GetValue()] = metric.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	for _, op := range []string{"save", "load", "delete", "list"} {
		assert.Positive(t, ops[op], op)
	}
}
