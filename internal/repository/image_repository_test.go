package repository

import (
	"context"
	"errors"
	"image"
	"testing"
)

// stubSource serves a fixed image.
type stubSource struct {
	img  image.Image
	err  error
	refs []string
}

func (s *stubSource) GetImage(_ context.Context, ref string) (image.Image, error) {
	s.refs = append(s.refs, ref)
	if s.err != nil {
		return nil, s.err
	}
	return s.img, nil
}

func TestFetchImage(t *testing.T) {
	source := &stubSource{img: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	repo := NewImageRepository(source)

	img, err := repo.FetchImage(context.Background(), "chart.png")
	if err != nil {
		t.Fatalf("FetchImage failed: %v", err)
	}
	if img == nil {
		t.Fatal("expected an image")
	}
	if len(source.refs) != 1 || source.refs[0] != "chart.png" {
		t.Errorf("source saw refs %v, want [chart.png]", source.refs)
	}
}

func TestFetchImage_InvalidRef(t *testing.T) {
	source := &stubSource{}
	repo := NewImageRepository(source)

	for _, ref := range []string{"", "   ", "\t"} {
		if _, err := repo.FetchImage(context.Background(), ref); !errors.Is(err, ErrInvalidImageRef) {
			t.Errorf("FetchImage(%q) = %v, want ErrInvalidImageRef", ref, err)
		}
	}
	if len(source.refs) != 0 {
		t.Errorf("expected no source calls for invalid refs, got %v", source.refs)
	}
}

func TestFetchImage_SourceError(t *testing.T) {
	sourceErr := errors.New("blob not found")
	repo := NewImageRepository(&stubSource{err: sourceErr})

	if _, err := repo.FetchImage(context.Background(), "chart.png"); !errors.Is(err, sourceErr) {
		t.Errorf("expected the source error, got %v", err)
	}
}

func TestValidateRef(t *testing.T) {
	repo := NewImageRepository(&stubSource{})

	if err := repo.ValidateRef("chart.png"); err != nil {
		t.Errorf("ValidateRef(chart.png) = %v, want nil", err)
	}
	if err := repo.ValidateRef(" "); err == nil {
		t.Error("expected an error for a blank reference")
	}
}
