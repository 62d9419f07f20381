package comments

import (
	"context"
	"time"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
	"github.com/ytscout/ytscout/internal/service/credential"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

const (
	// Page-size bounds for one comment fetch
	minPageSize = 20
	maxPageSize = 50

	// interPageDelay spaces out consecutive page fetches
	interPageDelay = 100 * time.Millisecond
)

// State is the paginator session state. A session is re-entrant into a new
// load only from Idle or Exhausted.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateExhausted
	StateError
)

// Outcome classifies how a load terminated
type Outcome int

const (
	// OutcomeSatisfied means the target count was reached
	OutcomeSatisfied Outcome = iota
	// OutcomeExhausted means the feed ran out before the target
	OutcomeExhausted
	// OutcomeNoComments means the video has no comments at all
	OutcomeNoComments
	// OutcomeDiscarded means the session was reset mid-flight and the
	// fetched data was thrown away
	OutcomeDiscarded
)

// Result is the terminal outcome of one load
type Result struct {
	Outcome  Outcome
	Comments []*model.CommentRecord
}

// Paginator drives the cursor-based comment feed for one video session at a
// time, accumulating pages until a target count is reached or the feed runs
// out. One fetch is in flight at a time; the Loading state is the sole
// re-entrancy guard. Resetting the session bumps a generation counter so a
// fetch dispatched before the reset has its result discarded on return.
type Paginator struct {
	client youtube.Client
	pool   *credential.Pool
	delay  time.Duration

	videoID    string
	state      State
	generation int
	comments   []*model.CommentRecord
	cursor     string
	hasMore    bool
	lastErr    error
}

// NewPaginator creates a paginator with the default inter-page delay
func NewPaginator(client youtube.Client, pool *credential.Pool) *Paginator {
	return &Paginator{
		client: client,
		pool:   pool,
		delay:  interPageDelay,
	}
}

// NewPaginatorWithDelay creates a paginator with a custom delay (for testing)
func NewPaginatorWithDelay(client youtube.Client, pool *credential.Pool, delay time.Duration) *Paginator {
	return &Paginator{
		client: client,
		pool:   pool,
		delay:  delay,
	}
}

// Open starts a session for the given video, discarding any previous session
func (p *Paginator) Open(videoID string) error {
	if videoID == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "video ID is required")
	}
	p.reset()
	p.videoID = videoID
	return nil
}

// Close resets the session. An in-flight fetch observes the generation bump
// and discards its result.
func (p *Paginator) Close() {
	p.reset()
}

func (p *Paginator) reset() {
	p.generation++
	p.videoID = ""
	p.state = StateIdle
	p.comments = nil
	p.cursor = ""
	p.hasMore = false
	p.lastErr = nil
}

// State returns the session state
func (p *Paginator) State() State {
	return p.state
}

// Comments returns the comments accumulated so far in this session
func (p *Paginator) Comments() []*model.CommentRecord {
	return p.comments
}

// Err returns the error that put the session into StateError, if any
func (p *Paginator) Err() error {
	return p.lastErr
}

// LoadTarget fetches pages until the accumulated count reaches target or the
// feed is exhausted. It rejects re-entry while a load is in flight and after
// an error (reopen the session instead). A fetch error halts the loop and
// keeps the partial accumulation.
func (p *Paginator) LoadTarget(ctx context.Context, target int) (*Result, error) {
	switch {
	case p.state == StateLoading:
		return nil, apperrors.New(apperrors.CodeConflict, "a comment load is already in progress")
	case p.state == StateError:
		return nil, apperrors.New(apperrors.CodeConflict, "session is in an error state; reopen the video")
	case p.videoID == "":
		return nil, apperrors.New(apperrors.CodeInvalidArg, "no video selected")
	case target <= 0:
		return nil, apperrors.New(apperrors.CodeInvalidArg, "target count must be positive")
	}

	gen := p.generation
	videoID := p.videoID
	p.comments = nil
	p.cursor = ""
	p.hasMore = true
	p.state = StateLoading

	var accumulated []*model.CommentRecord
	cursor := ""
	hasMore := true

	for len(accumulated) < target && hasMore {
		key, ok := p.pool.Current()
		if !ok {
			p.state = StateError
			p.lastErr = apperrors.New(apperrors.CodeNoCredentials, "no API keys configured")
			return nil, p.lastErr
		}

		page, err := p.client.CommentPage(ctx, key, videoID, pageSize(target-len(accumulated)), cursor)
		if p.generation != gen {
			return &Result{Outcome: OutcomeDiscarded}, nil
		}
		if err != nil {
			p.state = StateError
			p.lastErr = err
			return nil, err
		}

		// An empty page means the feed is done, whatever the cursor says
		if len(page.Comments) == 0 {
			hasMore = false
			break
		}

		items := page.Comments
		if remaining := target - len(accumulated); len(items) > remaining {
			items = items[:remaining]
		}
		accumulated = append(accumulated, items...)
		cursor = page.NextCursor
		hasMore = cursor != "" && len(accumulated) < target

		p.comments = accumulated
		p.cursor = cursor
		p.hasMore = hasMore

		if hasMore {
			select {
			case <-ctx.Done():
				p.state = StateError
				p.lastErr = ctx.Err()
				return nil, ctx.Err()
			case <-time.After(p.delay):
			}
			if p.generation != gen {
				return &Result{Outcome: OutcomeDiscarded}, nil
			}
		}
	}

	result := &Result{Comments: accumulated}
	switch {
	case len(accumulated) == 0:
		p.state = StateExhausted
		result.Outcome = OutcomeNoComments
	case len(accumulated) < target:
		p.state = StateExhausted
		result.Outcome = OutcomeExhausted
	default:
		p.state = StateIdle
		result.Outcome = OutcomeSatisfied
	}
	return result, nil
}

// pageSize bounds one fetch to [minPageSize, maxPageSize], asking for no more
// than the remainder needs once that exceeds the minimum.
func pageSize(remaining int) int64 {
	size := remaining
	if size < minPageSize {
		size = minPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return int64(size)
}
