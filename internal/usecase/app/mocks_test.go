package app_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/app-builder/internal/entity"
)

type fakeGateway struct {
	response string
	err      error
	format   entity.ResponseFormat
	prompts  []string
}

func (g *fakeGateway) Complete(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGateway) Backend() entity.Backend { return entity.BackendLocal }

func (g *fakeGateway) ResponseFormat() entity.ResponseFormat {
	if g.format == "" {
		return entity.FormatRaw
	}
	return g.format
}

type memoryRepo struct {
	mu      sync.Mutex
	records []*entity.SavedRecord
	saveErr error
}

func (r *memoryRepo) Save(_ context.Context, app entity.AppDescription) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return "", r.saveErr
	}
	id := fmt.Sprintf("app-%d", len(r.records)+1)
	r.records = append(r.records, &entity.SavedRecord{ID: id, AppDescription: app, CreatedAt: time.Now()})
	return id, nil
}

func (r *memoryRepo) LoadAll(_ context.Context) ([]*entity.SavedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.SavedRecord(nil), r.records...), nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*entity.SavedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, entity.ErrAppNotFound
}
