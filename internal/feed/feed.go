package feed

import (
	"math/rand"
	"sync"
	"time"

	"whalink/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Source delivers inbound messages for a chat. Consumers register a
// handler and receive a cancellation handle; nothing else about the
// transport leaks out, so a real push channel can replace the simulated
// one without touching callers.
type Source interface {
	Subscribe(chatID string, handler func(models.Message)) (cancel func())
}

// SimulatedSource synthesizes inbound messages on a fixed interval.
// Each tick has a fixed chance of delivering exactly one text message
// from the contact. Every subscription runs its own independent timer;
// subscribing twice to the same chat starts two timers.
type SimulatedSource struct {
	interval time.Duration
	chance   float64
	logger   *logrus.Logger

	// roll is injectable so tests can force or suppress delivery
	roll func() float64
	now  func() time.Time

	mu     sync.Mutex
	closed bool
	subs   map[int]chan struct{}
	nextID int
	wg     sync.WaitGroup
}

// NewSimulatedSource creates a simulated feed. A non-positive interval
// falls back to one second so a zero-value config cannot spin.
func NewSimulatedSource(interval time.Duration, chance float64, logger *logrus.Logger) *SimulatedSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &SimulatedSource{
		interval: interval,
		chance:   chance,
		logger:   logger,
		roll:     rand.Float64,
		now:      time.Now,
		subs:     make(map[int]chan struct{}),
	}
}

// Subscribe starts an independent delivery timer for the chat. The
// returned cancel function stops further deliveries and is safe to call
// more than once.
func (s *SimulatedSource) Subscribe(chatID string, handler func(models.Message)) func() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	stop := make(chan struct{})
	s.subs[id] = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go s.deliverLoop(chatID, handler, stop)

	s.logger.WithFields(logrus.Fields{
		"chatId":   chatID,
		"interval": s.interval,
	}).Debug("Chat subscription started")

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(stop)
		})
	}
}

// Close cancels every active subscription and waits for their timers to
// exit.
func (s *SimulatedSource) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, stop := range s.subs {
		delete(s.subs, id)
		close(stop)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *SimulatedSource) deliverLoop(chatID string, handler func(models.Message), stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.roll() >= s.chance {
				continue
			}
			handler(s.synthesize(chatID))
		}
	}
}

func (s *SimulatedSource) synthesize(chatID string) models.Message {
	return models.Message{
		ID:        "inc_" + uuid.NewString(),
		ChatID:    chatID,
		Text:      "This is a real-time message via SSE! 🚀",
		Type:      models.MessageTypeText,
		Timestamp: s.now().Format("3:04 PM"),
		Sender:    models.SenderThem,
		Status:    models.DeliveryRead,
	}
}
