// Package broadcast fans values out to any number of subscribers without
// ever blocking the publisher.
//
// MemoryBroadcaster keeps a small buffer per subscriber. When a subscriber
// falls behind, the oldest pending message is replaced by the new one, so a
// slow reader may skip intermediate values but always ends up with the most
// recent. This suits state feeds where only the current value matters: the
// session manager publishes a State snapshot after every change and UI-style
// consumers re-render from whatever they read last.
//
//	b := broadcast.NewMemoryBroadcaster[State](1)
//	sub := b.Subscribe(ctx) // closed automatically when ctx ends
//	go func() {
//	    for msg := range sub.Receive(ctx) {
//	        render(msg.Data)
//	    }
//	}()
//	_ = b.Broadcast(ctx, broadcast.Message[State]{Data: next})
//
// Close on the broadcaster closes every subscriber channel.
package broadcast
