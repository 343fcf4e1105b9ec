package capture

import (
	"context"
	"image"
	"sync"
)

// Lease owns an open stream until Release. Release stops the stream exactly
// once no matter how many exit paths call it.
type Lease struct {
	stream Stream
	once   sync.Once
	done   chan struct{}
}

// Acquire opens a stream on d. Acquisition errors are classified.
func Acquire(ctx context.Context, d Device, c Constraints) (*Lease, error) {
	s, err := d.Open(ctx, c)
	if err != nil {
		return nil, ClassifyDeviceError(err)
	}
	return &Lease{stream: s, done: make(chan struct{})}, nil
}

func (l *Lease) Frame(ctx context.Context) (image.Image, error) {
	select {
	case <-l.done:
		return nil, errReleased
	default:
	}
	return l.stream.Frame(ctx)
}

func (l *Lease) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.stream.Stop()
		close(l.done)
	})
}

// Released reports whether Release has run.
func (l *Lease) Released() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Stream exposes the leased stream for optional interface checks.
func (l *Lease) Stream() Stream { return l.stream }
