// Package notifier provides a topic-based broadcast mechanism for SSE
// updates. Each window subscribes to its own topic so a notes edit does
// not wake the confirm dialog.
package notifier

import "sync"

// Topic names one window's update stream.
type Topic string

const (
	TopicSave    Topic = "save"
	TopicNotes   Topic = "notes"
	TopicConfirm Topic = "confirm"
)

// AllTopics lists every window topic.
var AllTopics = []Topic{TopicSave, TopicNotes, TopicConfirm}

// Notifier broadcasts update pings to topic subscribers. Listeners receive
// an empty struct when fresh state is available and should re-read it from
// their controller.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[Topic]map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[Topic]map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives pings for the topic.
// The caller must call Unsubscribe when done to prevent leaks.
func (n *Notifier) Subscribe(topic Topic) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.listeners[topic] == nil {
		n.listeners[topic] = make(map[chan struct{}]struct{})
	}
	n.listeners[topic][ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(topic Topic, ch chan struct{}) {
	n.mu.Lock()
	if subs := n.listeners[topic]; subs != nil {
		delete(subs, ch)
	}
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends a ping to every listener of the topic. Non-blocking: a
// listener with a full channel catches up on its next read.
func (n *Notifier) Broadcast(topic Topic) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// BroadcastAll pings every topic.
func (n *Notifier) BroadcastAll() {
	for _, topic := range AllTopics {
		n.Broadcast(topic)
	}
}
