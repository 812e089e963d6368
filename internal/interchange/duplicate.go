package interchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/models"
)

// checkDuplicates looks up every incoming registration number against the
// owner's existing vehicles. Any hit fails the whole batch before
// anything is written.
func checkDuplicates(ctx context.Context, repo *db.Repository, ownerID models.UUID, records []VehicleRecord) ([]string, error) {
	var duplicates []string
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		registration := strings.TrimSpace(rec.RegistrationNumber)
		if registration == "" {
			continue
		}
		if seen[registration] {
			duplicates = append(duplicates,
				fmt.Sprintf("registration %q appears more than once in the batch", registration))
			continue
		}
		seen[registration] = true

		exists, err := repo.VehicleExistsByRegistration(ctx, ownerID, registration)
		if err != nil {
			return nil, err
		}
		if exists {
			duplicates = append(duplicates,
				fmt.Sprintf("vehicle with registration %q already exists", registration))
		}
	}
	return duplicates, nil
}
