package db

import (
	"context"
	"sync"
	"testing"

	"stayflow/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueClaimAck(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	messageID, err := repo.InsertMessage(common.OrdersQueue, `{"order_id":"o1"}`, ctx)
	require.NoError(t, err)
	assert.Positive(t, messageID)

	count, err := repo.CountPendingMessages(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	msg, err := repo.SelectMessageForProcessing(common.OrdersQueue, ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, messageID, msg.ID)
	assert.Equal(t, `{"order_id":"o1"}`, msg.Payload)

	// claimed message is no longer pending, so a second claim finds nothing
	second, err := repo.SelectMessageForProcessing(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.Nil(t, second)

	count, err = repo.CountPendingMessages(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	err = repo.UpdateMessageDone(msg.ID, ctx)
	require.NoError(t, err)

	// acknowledging twice is a no-op
	err = repo.UpdateMessageDone(msg.ID, ctx)
	require.NoError(t, err)

	count, err = repo.CountPendingMessages(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestClaimOrderIsFifoById(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	payloads := []string{`{"n":1}`, `{"n":2}`, `{"n":3}`}
	var ids []int64
	for _, p := range payloads {
		id, err := repo.InsertMessage(common.OrdersQueue, p, ctx)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i := range payloads {
		msg, err := repo.SelectMessageForProcessing(common.OrdersQueue, ctx)
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, ids[i], msg.ID)
		assert.Equal(t, payloads[i], msg.Payload)
	}
}

func TestQueuesAreIsolated(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertMessage(common.ReservationsQueue, `{"room_type_id":1}`, ctx)
	require.NoError(t, err)

	msg, err := repo.SelectMessageForProcessing(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.Nil(t, msg)

	count, err := repo.CountPendingMessages(common.OrdersQueue, ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = repo.CountPendingMessages(common.ReservationsQueue, ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentConsumersNeverShareAMessage(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	const total = 20
	for i := 0; i < total; i++ {
		_, err := repo.InsertMessage(common.OrdersQueue, `{}`, ctx)
		require.NoError(t, err)
	}

	var mu sync.Mutex
	claimed := make(map[int64]int)
	errCh := make(chan error, total*2)

	var wg sync.WaitGroup
	for consumer := 0; consumer < 2; consumer++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			misses := 0
			for misses < 5 {
				msg, err := repo.SelectMessageForProcessing(common.OrdersQueue, ctx)
				if err != nil {
					errCh <- err
					return
				}
				if msg == nil {
					// drained or lost the race this cycle
					misses++
					continue
				}
				misses = 0

				mu.Lock()
				claimed[msg.ID]++
				mu.Unlock()

				if err := repo.UpdateMessageDone(msg.ID, ctx); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	assert.Len(t, claimed, total)
	for id, times := range claimed {
		assert.Equal(t, 1, times, "message %d claimed more than once", id)
	}
}
