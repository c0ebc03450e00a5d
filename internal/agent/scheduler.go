package agent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler delivers agent replies after a fixed latency. Every pending
// reply is tied to its conversation, so deleting a chat or project cancels
// outstanding replies instead of appending to a conversation that no longer
// exists.
type Scheduler struct {
	responder *Responder

	mu      sync.Mutex
	pending map[string]map[string]context.CancelFunc // conversation id -> reply id -> cancel
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		responder: NewResponder(),
		pending:   make(map[string]map[string]context.CancelFunc),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Schedule queues a reply to userText for the given conversation. The
// deliver callback runs on the scheduler's goroutine once the delay elapses,
// unless the reply was cancelled first. Returns the reply id.
func (s *Scheduler) Schedule(conversationID, userText string, delay time.Duration, deliver func(reply string)) string {
	replyCtx, cancelReply := context.WithCancel(s.ctx)
	replyID := uuid.NewString()

	s.mu.Lock()
	if s.pending[conversationID] == nil {
		s.pending[conversationID] = make(map[string]context.CancelFunc)
	}
	s.pending[conversationID][replyID] = cancelReply
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.remove(conversationID, replyID)

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-replyCtx.Done():
			return
		case <-timer.C:
		}

		deliver(s.responder.Respond(userText))
	}()

	return replyID
}

// Cancel drops every pending reply for one conversation.
func (s *Scheduler) Cancel(conversationID string) {
	s.mu.Lock()
	cancels := s.pending[conversationID]
	delete(s.pending, conversationID)
	s.mu.Unlock()

	for _, cancelReply := range cancels {
		cancelReply()
	}
}

// Pending reports how many replies are still queued for a conversation.
func (s *Scheduler) Pending(conversationID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[conversationID])
}

// Close cancels all pending replies and waits for their goroutines.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) remove(conversationID, replyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancels, ok := s.pending[conversationID]; ok {
		delete(cancels, replyID)
		if len(cancels) == 0 {
			delete(s.pending, conversationID)
		}
	}
}
