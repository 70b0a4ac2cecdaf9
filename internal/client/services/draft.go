package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/kv"
	"github.com/dmitrijs2005/userreg/internal/common"
)

// DraftService keeps the first step of an unfinished registration in session
// storage. The password is never stored.
type DraftService interface {
	SaveDraft(ctx context.Context, step models.RegistrationStep1) error
	LoadDraft(ctx context.Context) (*models.RegistrationStep1, error)
	DropDraft(ctx context.Context) error
}

type draftService struct {
	repo kv.Repository
}

func NewDraftService(db *sql.DB) DraftService {
	return &draftService{repo: kv.NewSessionStorage(db)}
}

func (s *draftService) SaveDraft(ctx context.Context, step models.RegistrationStep1) error {
	data, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.repo.Set(ctx, common.RegistrationDraftKey, data)
}

// LoadDraft returns nil when there is no draft.
func (s *draftService) LoadDraft(ctx context.Context) (*models.RegistrationStep1, error) {
	data, err := s.repo.Get(ctx, common.RegistrationDraftKey)
	if err != nil || data == nil {
		return nil, err
	}
	var step models.RegistrationStep1
	if err := json.Unmarshal(data, &step); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &step, nil
}

func (s *draftService) DropDraft(ctx context.Context) error {
	return s.repo.Delete(ctx, common.RegistrationDraftKey)
}
