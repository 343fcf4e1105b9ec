package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"autoClaims/pkg/e"
)

// FrameDevice is a camera whose only frame was posted by the client. The
// HTTP capture endpoint runs a Step over it. A zero capturedAt leaves the
// capture time to the Step's clock.
type FrameDevice struct {
	data       []byte
	capturedAt time.Time
}

func NewFrameDevice(data []byte, capturedAt time.Time) *FrameDevice {
	return &FrameDevice{data: data, capturedAt: capturedAt}
}

func (d *FrameDevice) Open(_ context.Context, c Constraints) (Stream, error) {
	if len(d.data) == 0 {
		return nil, e.ErrCameraNotFound
	}

	img, _, err := image.Decode(bytes.NewReader(d.data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %w", e.ErrCameraUnavailable, err)
	}

	b := img.Bounds()
	if !c.Satisfies(b.Dx(), b.Dy()) {
		return nil, fmt.Errorf("%w: frame %dx%d below %dx%d", e.ErrCameraUnavailable,
			b.Dx(), b.Dy(), c.Width.Min, c.Height.Min)
	}

	return &frameStream{img: img, capturedAt: d.capturedAt}, nil
}

type frameStream struct {
	img        image.Image
	capturedAt time.Time
	stopped    atomic.Bool
}

func (s *frameStream) Frame(_ context.Context) (image.Image, error) {
	if s.stopped.Load() {
		return nil, errReleased
	}
	return s.img, nil
}

func (s *frameStream) Stop() { s.stopped.Store(true) }

func (s *frameStream) CapturedAt() time.Time { return s.capturedAt }
