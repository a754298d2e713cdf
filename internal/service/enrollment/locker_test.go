package enrollment

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLockerSerializes(t *testing.T) {
	l := NewSessionLocker()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("s1")
			defer l.Unlock("s1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, l.Len())
}

func TestSessionLockerForgetsReleasedSessions(t *testing.T) {
	l := NewSessionLocker()
	l.Lock("a")
	l.Lock("b")
	assert.Equal(t, 2, l.Len())

	l.Unlock("a")
	assert.Equal(t, 1, l.Len())
	l.Unlock("b")
	assert.Zero(t, l.Len())

	// unlocking an unknown id is a no-op
	l.Unlock("c")
	assert.Zero(t, l.Len())
}

func TestUnknownSessionsLeaveNoLocks(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		id := "missing-" + strconv.Itoa(i)
		_, err := fx.flow.Next(ctx, id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = fx.flow.Update(ctx, id, FieldUpdate{FullName: str("x")})
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, fx.flow.Discard(ctx, id), ErrSessionNotFound)
	}
	assert.Zero(t, fx.flow.locker.Len())
}
