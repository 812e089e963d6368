package interchange

import (
	"context"
	"strconv"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/models"
)

// resolver finds or creates shared lookup rows (vehicle types, makes,
// models, part categories, consumable types) inside one import
// transaction. A per-call memo makes resolution idempotent: the same
// natural key always yields the same row within the call. Uniqueness
// under concurrent imports is enforced by the schema's UNIQUE
// constraints; the repository inserts with ON CONFLICT DO NOTHING and
// re-selects.
type resolver struct {
	repo    *db.Repository
	memo    map[string]models.UUID
	created int
}

func newResolver(repo *db.Repository) *resolver {
	return &resolver{
		repo: repo,
		memo: make(map[string]models.UUID),
	}
}

// memoKey scopes a natural key by kind and parent so identical names in
// different scopes stay distinct.
func memoKey(kind string, scope models.UUID, name string) string {
	return kind + "\x00" + string(scope) + "\x00" + name
}

func (r *resolver) vehicleType(ctx context.Context, name string) (models.UUID, error) {
	k := memoKey("vehicle_type", "", name)
	if id, ok := r.memo[k]; ok {
		return id, nil
	}
	id, created, err := r.repo.EnsureVehicleType(ctx, name)
	if err != nil {
		return "", err
	}
	if created {
		r.created++
	}
	r.memo[k] = id
	return id, nil
}

func (r *resolver) vehicleMake(ctx context.Context, typeID models.UUID, name string) (models.UUID, error) {
	k := memoKey("vehicle_make", typeID, name)
	if id, ok := r.memo[k]; ok {
		return id, nil
	}
	id, created, err := r.repo.EnsureVehicleMake(ctx, typeID, name)
	if err != nil {
		return "", err
	}
	if created {
		r.created++
	}
	r.memo[k] = id
	return id, nil
}

func (r *resolver) vehicleModel(ctx context.Context, makeID models.UUID, name string, startYear int) (models.UUID, error) {
	// the natural key is (make, name, start year); same-named model
	// generations must not collapse into one row
	k := memoKey("vehicle_model", makeID, name+"\x00"+strconv.Itoa(startYear))
	if id, ok := r.memo[k]; ok {
		return id, nil
	}
	id, created, err := r.repo.EnsureVehicleModel(ctx, makeID, name, startYear, 0)
	if err != nil {
		return "", err
	}
	if created {
		r.created++
	}
	r.memo[k] = id
	return id, nil
}

func (r *resolver) partCategory(ctx context.Context, typeID models.UUID, name string) (models.UUID, error) {
	k := memoKey("part_category", typeID, name)
	if id, ok := r.memo[k]; ok {
		return id, nil
	}
	id, created, err := r.repo.EnsurePartCategory(ctx, typeID, name)
	if err != nil {
		return "", err
	}
	if created {
		r.created++
	}
	r.memo[k] = id
	return id, nil
}

func (r *resolver) consumableType(ctx context.Context, typeID models.UUID, name string) (models.UUID, error) {
	k := memoKey("consumable_type", "", name)
	if id, ok := r.memo[k]; ok {
		return id, nil
	}
	id, created, err := r.repo.EnsureConsumableType(ctx, typeID, name)
	if err != nil {
		return "", err
	}
	if created {
		r.created++
	}
	r.memo[k] = id
	return id, nil
}
