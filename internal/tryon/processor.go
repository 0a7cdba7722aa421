package tryon

import (
	"context"
	"log"
	"time"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// Generator renders a try-on result for a session.
type Generator interface {
	Generate(
		ctx context.Context,
		session *models.TryOnSession,
		hairstyle *models.Hairstyle,
	) (resultURL string, metadata map[string]any, err error)
}

// Processor drains the try-on queue with a fixed pool of workers. Sessions
// move pending -> processing -> completed|failed; nothing retries a failed
// session automatically.
type Processor struct {
	repo    domain.Repository
	gen     Generator
	queue   chan uint
	workers int
}

func NewProcessor(repo domain.Repository, gen Generator, workers, queueSize int) *Processor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	return &Processor{
		repo:    repo,
		gen:     gen,
		queue:   make(chan uint, queueSize),
		workers: workers,
	}
}

func (p *Processor) Start() {
	for i := 0; i < p.workers; i++ {
		go p.worker()
	}
}

func (p *Processor) Full() bool {
	return len(p.queue) == cap(p.queue)
}

// Enqueue never blocks; false means the queue is full.
func (p *Processor) Enqueue(sessionID uint) bool {
	select {
	case p.queue <- sessionID:
		return true
	default:
		return false
	}
}

func (p *Processor) worker() {
	for id := range p.queue {
		p.process(context.Background(), id)
	}
}

func (p *Processor) process(ctx context.Context, sessionID uint) {
	session, err := p.repo.GetSession(ctx, sessionID)
	if err != nil {
		log.Println("tryon: session not found:", err)
		return
	}

	if err := domain.CanTransition(session.Status, models.TryOnProcessing); err != nil {
		return
	}

	session.Status = models.TryOnProcessing
	if err := p.repo.UpdateSession(ctx, session); err != nil {
		log.Println("tryon: failed to mark processing:", err)
		return
	}

	started := time.Now()

	resultURL, metadata, genErr := p.generate(ctx, session)

	session.ProcessingTimeMs = time.Since(started).Milliseconds()

	if genErr != nil {
		session.Status = models.TryOnFailed
		session.ErrorMessage = genErr.Error()
	} else {
		session.Status = models.TryOnCompleted
		session.ResultImageURL = resultURL
		session.GeneratorMetadata = metadata
	}

	if err := p.repo.UpdateSession(ctx, session); err != nil {
		log.Println("tryon: failed to store result:", err)
		return
	}

	if genErr == nil {
		if err := p.repo.IncrementHairstyleTryOns(ctx, session.HairstyleID); err != nil {
			log.Println("tryon: failed to bump hairstyle counter:", err)
		}
	}
}

func (p *Processor) generate(
	ctx context.Context,
	session *models.TryOnSession,
) (string, map[string]any, error) {

	hairstyle, err := p.repo.GetHairstyle(ctx, session.HairstyleID)
	if err != nil {
		return "", nil, err
	}
	return p.gen.Generate(ctx, session, hairstyle)
}
