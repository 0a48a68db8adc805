// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "testing"

func TestDeviceString(t *testing.T) {
	d := Device{DeviceID: "INVERTER_01", DeviceName: "Main House Inverter"}
	if got := d.String(); got != "Main House Inverter (INVERTER_01)" {
		t.Fatalf("unexpected device string: %q", got)
	}
}

func TestEnergyTariffString(t *testing.T) {
	tr := EnergyTariff{Name: "Standard Rate", RatePerKwh: 65, Currency: "NGN"}
	if got := tr.String(); got != "Standard Rate: 65 NGN/kWh" {
		t.Fatalf("unexpected tariff string: %q", got)
	}
}

func TestAlertString(t *testing.T) {
	a := Alert{Severity: SeverityCritical, AlertType: "BATTERY_LOW", Message: "Battery level critically low"}
	if got := a.String(); got != "CRITICAL: BATTERY_LOW - Battery level critically low" {
		t.Fatalf("unexpected alert string: %q", got)
	}
}
