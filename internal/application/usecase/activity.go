package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// logActivity agrega a la bitácora un registro con las instantáneas previa y nueva.
// Debe llamarse con los repos de la misma transacción que la mutación.
func logActivity(ctx context.Context, r repository.Repos, companyID, entityType, entityID, action string, oldValue, newValue any) error {
	oldRaw, err := snapshot(oldValue)
	if err != nil {
		return err
	}
	newRaw, err := snapshot(newValue)
	if err != nil {
		return err
	}
	return r.Activity.Append(ctx, &entity.ActivityLog{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValue:   oldRaw,
		NewValue:   newRaw,
		CreatedAt:  time.Now(),
	})
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot activity: %w", err)
	}
	return b, nil
}
