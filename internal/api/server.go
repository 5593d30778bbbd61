package api

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	StudentService    services.StudentService
	CardService       services.CardService
	VocabularyService services.VocabularyService
	DeckService       services.DeckService
	DB                Pinger
	RequestTimeout    time.Duration
}
