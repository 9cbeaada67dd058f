package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ViewportPayload) Validate() error {
	if p.CanvasWidth <= 0 || p.CanvasHeight <= 0 {
		return errors.New("canvas dimensions must be positive")
	}
	if p.Zoom != 0 && (p.Zoom < 0.01 || p.Zoom > 100) {
		return errors.New("zoom out of sane range")
	}
	return nil
}

func (p ZoomPayload) Validate() error {
	if p.Zoom <= 0 {
		return errors.New("zoom must be positive")
	}
	return nil
}

func (p PresetPayload) Validate() error {
	if p.Name == "" {
		return errors.New("preset name is required")
	}
	return nil
}
