package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_DeliversAfterDelay(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	done := make(chan string, 1)
	s.Schedule("conv-1", "hallo", 10*time.Millisecond, func(reply string) {
		done <- reply
	})

	select {
	case reply := <-done:
		require.Equal(t, "Hallo, wie kann ich Ihnen helfen?", reply)
	case <-time.After(time.Second):
		t.Fatal("reply was never delivered")
	}

	require.Eventually(t, func() bool {
		return s.Pending("conv-1") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_CancelDropsPendingReplies(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	delivered := make(chan string, 2)
	s.Schedule("conv-1", "hallo", 50*time.Millisecond, func(reply string) {
		delivered <- reply
	})
	s.Schedule("conv-1", "danke", 50*time.Millisecond, func(reply string) {
		delivered <- reply
	})
	require.Equal(t, 2, s.Pending("conv-1"))

	s.Cancel("conv-1")

	select {
	case reply := <-delivered:
		t.Fatalf("cancelled reply was delivered: %q", reply)
	case <-time.After(150 * time.Millisecond):
	}
	require.Equal(t, 0, s.Pending("conv-1"))
}

func TestScheduler_CancelIsScopedToConversation(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	delivered := make(chan string, 1)
	s.Schedule("conv-1", "hallo", 200*time.Millisecond, func(string) {})
	s.Schedule("conv-2", "hallo", 10*time.Millisecond, func(reply string) {
		delivered <- reply
	})

	s.Cancel("conv-1")

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("reply for the other conversation should still fire")
	}
}

func TestScheduler_CloseCancelsEverything(t *testing.T) {
	s := NewScheduler()

	delivered := make(chan string, 1)
	s.Schedule("conv-1", "hallo", time.Hour, func(reply string) {
		delivered <- reply
	})

	// Close must return promptly even with a far-future reply pending.
	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
	require.Empty(t, delivered)
}
