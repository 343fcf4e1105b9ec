package domain

import (
	"encoding/base64"
	"fmt"
	"time"
)

type Angle string

const (
	AngleFront Angle = "front"
	AngleRear  Angle = "rear"
	AngleLeft  Angle = "left"
	AngleRight Angle = "right"
)

// Angles is the fixed capture order, which is also the stored URL order.
var Angles = [4]Angle{AngleFront, AngleRear, AngleLeft, AngleRight}

func ParseAngle(s string) (Angle, bool) {
	for _, a := range Angles {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Index is the 0-based capture position, or -1 for an unknown angle.
func (a Angle) Index() int {
	for i, x := range Angles {
		if x == a {
			return i
		}
	}
	return -1
}

// PhotoSet holds one public URL per angle.
type PhotoSet struct {
	Front string `json:"front"`
	Rear  string `json:"rear"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

func (p PhotoSet) Get(a Angle) string {
	switch a {
	case AngleFront:
		return p.Front
	case AngleRear:
		return p.Rear
	case AngleLeft:
		return p.Left
	case AngleRight:
		return p.Right
	}
	return ""
}

func (p *PhotoSet) Set(a Angle, url string) {
	switch a {
	case AngleFront:
		p.Front = url
	case AngleRear:
		p.Rear = url
	case AngleLeft:
		p.Left = url
	case AngleRight:
		p.Right = url
	}
}

func (p PhotoSet) Complete() bool {
	return p.Front != "" && p.Rear != "" && p.Left != "" && p.Right != ""
}

// URLs returns the storage representation: front, rear, left, right.
func (p PhotoSet) URLs() []string {
	return []string{p.Front, p.Rear, p.Left, p.Right}
}

func PhotoSetFromURLs(urls []string) (PhotoSet, error) {
	if len(urls) != len(Angles) {
		return PhotoSet{}, fmt.Errorf("expected %d photo urls, got %d", len(Angles), len(urls))
	}
	var p PhotoSet
	for i, a := range Angles {
		p.Set(a, urls[i])
	}
	return p, nil
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type PhotoMetadata struct {
	Timestamp  time.Time   `json:"timestamp"`
	DeviceInfo string      `json:"device_info,omitempty"`
	FileSize   int64       `json:"file_size"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// CapturedPhoto lives only inside a wizard session. Data is dropped once the
// photo is uploaded and never persisted with the session.
type CapturedPhoto struct {
	Angle       Angle         `json:"angle"`
	Metadata    PhotoMetadata `json:"metadata"`
	Timestamp   time.Time     `json:"timestamp"`
	ContentType string        `json:"content_type"`
	URL         string        `json:"url,omitempty"`
	Data        []byte        `json:"-"`
}

func (p *CapturedPhoto) DataURL() string {
	if len(p.Data) == 0 {
		return ""
	}
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// CapturedSet is the wizard's per-angle photo slots.
type CapturedSet struct {
	Front *CapturedPhoto `json:"front,omitempty"`
	Rear  *CapturedPhoto `json:"rear,omitempty"`
	Left  *CapturedPhoto `json:"left,omitempty"`
	Right *CapturedPhoto `json:"right,omitempty"`
}

func (s *CapturedSet) slot(a Angle) **CapturedPhoto {
	switch a {
	case AngleFront:
		return &s.Front
	case AngleRear:
		return &s.Rear
	case AngleLeft:
		return &s.Left
	case AngleRight:
		return &s.Right
	}
	return nil
}

func (s *CapturedSet) Get(a Angle) *CapturedPhoto {
	if p := s.slot(a); p != nil {
		return *p
	}
	return nil
}

func (s *CapturedSet) Put(a Angle, photo *CapturedPhoto) {
	if p := s.slot(a); p != nil {
		*p = photo
	}
}

func (s *CapturedSet) Remove(a Angle) {
	s.Put(a, nil)
}

// All returns the captured photos in angle order, skipping empty slots.
func (s *CapturedSet) All() []*CapturedPhoto {
	out := make([]*CapturedPhoto, 0, len(Angles))
	for _, a := range Angles {
		if p := s.Get(a); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (s *CapturedSet) Complete() bool {
	for _, a := range Angles {
		if p := s.Get(a); p == nil || p.URL == "" {
			return false
		}
	}
	return true
}

func (s *CapturedSet) URLs() PhotoSet {
	var out PhotoSet
	for _, a := range Angles {
		if p := s.Get(a); p != nil {
			out.Set(a, p.URL)
		}
	}
	return out
}
