// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package seed populates the store with reference and sample data:
// default energy tariffs, demo devices, clients and historical readings.
package seed

import (
	"fmt"
	"io"

	"github.com/gridpulse/gridpulse/internal/db"
	"github.com/gridpulse/gridpulse/internal/model"
)

// DefaultTariffs is the fixed reference tariff set. Rates are per kWh.
// The time-bound rates use local wall-clock windows; the off-peak window
// wraps midnight.
var DefaultTariffs = []model.EnergyTariff{
	{Name: "Standard Rate", RatePerKwh: 65.0, Currency: "NGN"},
	{Name: "Off-Peak Rate", RatePerKwh: 45.0, Currency: "NGN", StartTime: "22:00", EndTime: "06:00"},
	{Name: "Peak Rate", RatePerKwh: 85.0, Currency: "NGN", StartTime: "17:00", EndTime: "22:00"},
	{Name: "USD Standard Rate", RatePerKwh: 0.12, Currency: "USD"},
}

// CreateTariffs ensures every default tariff exists, creating the missing
// ones. Existing tariffs are left untouched, so re-running is safe. It
// returns the full tariff set in DefaultTariffs order and the number of
// newly created records.
func CreateTariffs(store db.Store, out io.Writer) ([]model.EnergyTariff, int, error) {
	var tariffs []model.EnergyTariff
	created := 0
	for _, want := range DefaultTariffs {
		existing, err := store.GetTariffByName(want.Name)
		if err != nil {
			return nil, created, fmt.Errorf("failed to look up tariff %q: %w", want.Name, err)
		}
		if existing != nil {
			fmt.Fprintf(out, "  Already exists: %s\n", existing.Name)
			tariffs = append(tariffs, *existing)
			continue
		}
		id, err := store.CreateTariff(want)
		if err != nil {
			return nil, created, fmt.Errorf("failed to create tariff %q: %w", want.Name, err)
		}
		want.ID = id
		want.IsActive = true
		fmt.Fprintf(out, "  Created: %s\n", want)
		tariffs = append(tariffs, want)
		created++
	}

	total, err := store.CountTariffs()
	if err != nil {
		return tariffs, created, err
	}
	fmt.Fprintf(out, "Created %d new tariffs (total: %d)\n", created, total)
	return tariffs, created, nil
}
