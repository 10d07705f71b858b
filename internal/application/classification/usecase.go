package classification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// RegistryUseCase administra las clasificaciones de movimientos de caja.
// Eliminar una clasificación en uso corrompería silenciosamente la historia
// financiera, por eso Delete exige uso cero y la alternativa es
// TransferAndDelete: reasignación + borrado en una sola transacción.
type RegistryUseCase struct {
	txRunner  TxRunner
	classRepo repository.ClassificationRepository
	movRepo   repository.CashMovementRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	classRepo repository.ClassificationRepository,
	movRepo repository.CashMovementRepository,
) *RegistryUseCase {
	return &RegistryUseCase{txRunner: txRunner, classRepo: classRepo, movRepo: movRepo}
}

// Create registra una clasificación nueva en el scope de la empresa.
func (uc *RegistryUseCase) Create(companyID string, in dto.CreateClassificationRequest) (*dto.ClassificationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	class := &entity.Classification{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.classRepo.Create(class); err != nil {
		return nil, err
	}
	return toResponse(class, 0), nil
}

// Rename cambia el nombre de la clasificación.
func (uc *RegistryUseCase) Rename(companyID, id string, in dto.RenameClassificationRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	class, err := uc.owned(companyID, id)
	if err != nil {
		return err
	}
	class.Name = in.Name
	class.UpdatedAt = time.Now()
	return uc.classRepo.Update(class)
}

// List devuelve las clasificaciones de la empresa con su conteo de uso.
func (uc *RegistryUseCase) List(companyID string, page dto.PageRequest) ([]dto.ClassificationResponse, error) {
	page.DefaultPage()
	classes, err := uc.classRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClassificationResponse, 0, len(classes))
	for _, c := range classes {
		usage, err := uc.movRepo.CountByClassification(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(c, usage))
	}
	return out, nil
}

// UsageCount cuenta los movimientos que referencian la clasificación. El valor
// es solo informativo para la UI: TransferAndDelete lo vuelve a comprobar
// dentro de su transacción, nunca confía en un conteo previo.
func (uc *RegistryUseCase) UsageCount(companyID, id string) (int, error) {
	if _, err := uc.owned(companyID, id); err != nil {
		return 0, err
	}
	return uc.movRepo.CountByClassification(id)
}

// Delete elimina la clasificación solo si ningún movimiento la referencia;
// con uso > 0 devuelve ErrClassificationInUse (el camino correcto es
// TransferAndDelete). La comprobación y el borrado corren en una transacción
// para que un append concurrente no se quede huérfano.
func (uc *RegistryUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(companyID, id); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.CashMovementRepository,
		classRepo repository.ClassificationRepository,
	) error {
		usage, err := movRepo.CountByClassification(id)
		if err != nil {
			return err
		}
		if usage > 0 {
			return domain.ErrClassificationInUse
		}
		return classRepo.Delete(id)
	})
}

// TransferAndDelete reasigna todos los movimientos de fromID a toID y elimina
// fromID, todo dentro de una única transacción: o pasan ambas cosas o ninguna.
func (uc *RegistryUseCase) TransferAndDelete(ctx context.Context, companyID, fromID, toID string) error {
	if fromID == toID {
		return domain.ErrInvalidInput
	}
	if _, err := uc.owned(companyID, fromID); err != nil {
		return err
	}
	if _, err := uc.owned(companyID, toID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.CashMovementRepository,
		classRepo repository.ClassificationRepository,
	) error {
		// Releer dentro de la tx: el destino pudo desaparecer entre la
		// comprobación de arriba y el inicio de la transacción.
		to, err := classRepo.GetByID(toID)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.ErrNotFound
		}
		if _, err := movRepo.ReassignClassification(fromID, toID); err != nil {
			return err
		}
		return classRepo.Delete(fromID)
	})
}

// owned devuelve la clasificación si existe y pertenece a la empresa.
func (uc *RegistryUseCase) owned(companyID, id string) (*entity.Classification, error) {
	class, err := uc.classRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, domain.ErrNotFound
	}
	if class.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return class, nil
}

func toResponse(c *entity.Classification, usage int) *dto.ClassificationResponse {
	return &dto.ClassificationResponse{
		ID:        c.ID,
		Name:      c.Name,
		Usage:     usage,
		CreatedAt: c.CreatedAt,
	}
}
