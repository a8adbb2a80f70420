package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	sm := NewManager()
	require.Equal(t, StateNone, sm.GetState(42))

	sm.Begin(42, StateRespondingToRequest, map[string]interface{}{
		DataRequestID: int64(7),
		DataAction:    "approve",
	})
	require.Equal(t, StateRespondingToRequest, sm.GetState(42))

	id, ok := sm.GetInt64(42, DataRequestID)
	require.True(t, ok)
	require.EqualValues(t, 7, id)

	action, ok := sm.GetString(42, DataAction)
	require.True(t, ok)
	require.Equal(t, "approve", action)

	_, ok = sm.GetInt64(42, DataAction)
	require.False(t, ok)

	data := sm.GetAllData(42)
	data["extra"] = true
	_, ok = sm.GetData(42, "extra")
	require.False(t, ok)

	sm.ClearState(42)
	require.Equal(t, StateNone, sm.GetState(42))
	require.Nil(t, sm.GetAllData(42))
}

func TestManagerSetStateNoneDeletes(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, DataRequestID, int64(3))
	sm.SetState(1, StateRespondingToRequest)
	sm.SetState(1, StateNone)

	_, ok := sm.GetData(1, DataRequestID)
	require.False(t, ok)
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.Begin(id, StateRespondingToRequest, map[string]interface{}{DataRequestID: id})
			got, _ := sm.GetInt64(id, DataRequestID)
			if got != id {
				t.Errorf("request id = %d, want %d", got, id)
			}
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()
}
