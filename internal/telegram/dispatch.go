package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// dispatcher fans updates out to one ordered queue per user. Document
// downloads and extraction can block for seconds; with a queue per user a
// slow document stalls only its own sender, while that user's events still
// run one at a time in arrival order.
//
// Queues are unbounded slices, so Dispatch never blocks the update loop no
// matter how far one user falls behind. The per-user drain goroutine exits
// once its queue is empty and is restarted on the next event.
type dispatcher struct {
	mu     sync.Mutex
	queues map[int64]*userQueue
	handle func(tgbotapi.Update)
}

type userQueue struct {
	pending []tgbotapi.Update
	running bool
}

func newDispatcher(handle func(tgbotapi.Update)) *dispatcher {
	return &dispatcher{
		queues: make(map[int64]*userQueue),
		handle: handle,
	}
}

func (d *dispatcher) Dispatch(userID int64, update tgbotapi.Update) {
	d.mu.Lock()
	defer d.mu.Unlock()

	queue, ok := d.queues[userID]
	if !ok {
		queue = &userQueue{}
		d.queues[userID] = queue
	}
	queue.pending = append(queue.pending, update)
	if !queue.running {
		queue.running = true
		go d.drain(queue)
	}
}

func (d *dispatcher) drain(queue *userQueue) {
	for {
		d.mu.Lock()
		if len(queue.pending) == 0 {
			queue.running = false
			d.mu.Unlock()
			return
		}
		update := queue.pending[0]
		queue.pending = queue.pending[1:]
		d.mu.Unlock()

		d.handle(update)
	}
}
