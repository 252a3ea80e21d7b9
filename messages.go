package bridges

// MessageBoard is a Presenter that holds the one visible message and
// expires it in update time. Showing a message replaces the current one.
type MessageBoard struct {
	current   Message
	visible   bool
	remaining float32 // seconds; only meaningful when current.Duration > 0
}

// NewMessageBoard returns an empty board.
func NewMessageBoard() *MessageBoard {
	return &MessageBoard{}
}

// ShowMessage displays msg, replacing any visible message.
func (b *MessageBoard) ShowMessage(msg Message) {
	b.current = msg
	b.visible = true
	b.remaining = float32(msg.Duration.Seconds())
}

// HideMessage clears the visible message.
func (b *MessageBoard) HideMessage() {
	b.current = Message{}
	b.visible = false
	b.remaining = 0
}

// Update advances the expiry clock by dt seconds.
func (b *MessageBoard) Update(dt float32) {
	if !b.visible || b.current.Duration <= 0 {
		return
	}
	b.remaining -= dt
	if b.remaining <= 0 {
		b.HideMessage()
	}
}

// Current returns the visible message.
func (b *MessageBoard) Current() (Message, bool) {
	return b.current, b.visible
}
