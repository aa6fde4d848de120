package components

import (
	"shareit/internal/infra/memstore"
	"shareit/internal/infra/uow"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
	),
)

type persistenceParams struct {
	fx.In

	Config config.Config
	Pool   *pgxpool.Pool `optional:"true"`
}

func NewUnitOfWork(p persistenceParams) (shared.UnitOfWork, error) {
	switch p.Config.Storage.Driver {
	case config.StorageDriverMemory:
		return memstore.NewUoW(memstore.NewStore()), nil
	case config.StorageDriverPostgres:
		if p.Pool == nil {
			return nil, errs.New("postgres storage selected but no connection pool is available")
		}
		return uow.NewPostgresUoW(p.Pool), nil
	default:
		return nil, errs.Newf("unsupported storage driver %q", p.Config.Storage.Driver)
	}
}
