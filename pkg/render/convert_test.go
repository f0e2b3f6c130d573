package render

import (
	"context"
	"errors"
	"testing"
)

func TestConvertWithoutRsvg(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	if _, err := ToPDF(context.Background(), svg); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPDF() error = %v, want ErrConverterMissing", err)
	}
	if _, err := ToPNG(context.Background(), svg, 2); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPNG() error = %v, want ErrConverterMissing", err)
	}
}
