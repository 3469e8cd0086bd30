package ui_test

import (
	"context"
	"sync"

	"github.com/futig/app-builder/internal/entity"
)

type stubPipeline struct {
	mu sync.Mutex

	app       *entity.AppDescription
	parseErr  error
	overrides entity.StyleOverrideSet
	styleErr  error
	saveErr   error

	// block, when set, holds ParseRequirements until it is closed.
	block chan struct{}

	parseCalls int
	styleCalls int
	saveCalls  int
}

func (p *stubPipeline) ParseRequirements(ctx context.Context, description string) (*entity.AppDescription, error) {
	p.mu.Lock()
	p.parseCalls++
	block := p.block
	p.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.parseErr != nil {
		return nil, p.parseErr
	}
	app := *p.app
	app.Description = description
	return &app, nil
}

func (p *stubPipeline) CustomizeUI(_ context.Context, _ string, _ entity.StyleOverrideSet) (entity.StyleOverrideSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styleCalls++
	if p.styleErr != nil {
		return nil, p.styleErr
	}
	return p.overrides, nil
}

func (p *stubPipeline) SaveApp(_ context.Context, _ *entity.AppDescription) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveCalls++
	if p.saveErr != nil {
		return "", p.saveErr
	}
	return "saved-1", nil
}

func (p *stubPipeline) saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveCalls
}

func courseManager() *entity.AppDescription {
	return &entity.AppDescription{
		AppName:  "Course Manager",
		Entities: []string{"Student", "Course", "Grade"},
		Roles:    []string{"Teacher", "Student"},
		Features: []string{"Enroll", "Grade"},
	}
}
