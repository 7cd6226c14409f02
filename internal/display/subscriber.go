package display

import "github.com/lox/blackjack/internal/game"

// Subscriber renders every event it receives and hands the text to write.
// Events that render to nothing are skipped.
type Subscriber struct {
	formatter *Formatter
	write     func(string)
}

// NewSubscriber creates a subscriber writing through write
func NewSubscriber(formatter *Formatter, write func(string)) *Subscriber {
	return &Subscriber{formatter: formatter, write: write}
}

// OnEvent implements game.EventSubscriber
func (s *Subscriber) OnEvent(event game.GameEvent) {
	if text := s.formatter.FormatEvent(event); text != "" {
		s.write(text)
	}
}
