// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package seed

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/gridpulse/gridpulse/internal/db"
	"github.com/gridpulse/gridpulse/internal/model"
)

// Options controls sample-data generation.
type Options struct {
	// Days of historical data to generate.
	Days int
	// Clear wipes existing seedable data before generating.
	Clear bool
	// Seed for the random source; 0 means derive from the clock.
	Seed int64
	// Now anchors the generated history; zero means time.Now().
	Now time.Time
}

// DefaultDays matches the original seeding default of one week.
const DefaultDays = 7

// generator carries the shared state of one seeding run.
type generator struct {
	store db.Store
	out   io.Writer
	rng   *rand.Rand
	now   time.Time
}

// Generate populates the store with demo devices, clients and a
// realistic reading history. Devices, clients and tariffs use
// get-or-create semantics; readings are appended, so rerunning without
// Clear duplicates history.
func Generate(store db.Store, out io.Writer, opts Options) error {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	g := &generator{
		store: store,
		out:   out,
		rng:   rand.New(rand.NewSource(seed)),
		now:   now,
	}

	if opts.Clear {
		fmt.Fprintln(out, "Clearing existing data...")
		if err := store.ClearSampleData(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	fmt.Fprintln(out, "Generating sample data...")

	devices, err := g.createDevices()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d devices\n", len(devices))

	tariffs, _, err := CreateTariffs(store, out)
	if err != nil {
		return err
	}

	clients, err := g.createClients(devices)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d clients\n", len(clients))

	// The flat standard tariff prices the daily rollups.
	standard := tariffs[0]

	for _, device := range devices {
		fmt.Fprintf(out, "\nGenerating data for %s...\n", device.DeviceName)

		readings, err := g.generatePowerReadings(device, opts.Days, standard)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %d power readings\n", readings)

		battery, err := g.generateBatteryReadings(device, opts.Days)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %d battery readings\n", battery)

		alerts, err := g.generateAlerts(device)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %d alerts\n", alerts)
	}

	messages, err := g.generateWhatsAppMessages(devices, clients)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCreated %d WhatsApp messages\n", messages)

	fmt.Fprintln(out, "\nSample data generation complete!")
	return g.printSummary(devices)
}

// createDevices ensures the three demo inverters exist.
func (g *generator) createDevices() ([]model.Device, error) {
	devicesData := []model.Device{
		{DeviceID: "INVERTER_01", DeviceName: "Main House Inverter", DeviceType: "inverter", Location: "Main Building"},
		{DeviceID: "INVERTER_02", DeviceName: "Guest House Inverter", DeviceType: "inverter", Location: "Guest House"},
		{DeviceID: "INVERTER_03", DeviceName: "Workshop Inverter", DeviceType: "inverter", Location: "Workshop"},
	}

	var devices []model.Device
	for _, d := range devicesData {
		existing, err := g.store.GetDeviceByDeviceID(d.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up device %s: %w", d.DeviceID, err)
		}
		if existing != nil {
			devices = append(devices, *existing)
			continue
		}
		id, err := g.store.CreateDevice(d)
		if err != nil {
			return nil, fmt.Errorf("failed to create device %s: %w", d.DeviceID, err)
		}
		d.ID = id
		d.IsActive = true
		devices = append(devices, d)
	}
	return devices, nil
}

// createClients ensures the demo clients exist and own their devices.
// Assignment: the first client gets the first inverter, the second the
// second, and the corporate client the third plus the first.
func (g *generator) createClients(devices []model.Device) ([]model.Client, error) {
	clientsData := []model.Client{
		{
			Name: "John Doe", Email: "john.doe@example.com",
			Phone: "+2348034567890", WhatsappNumber: "+2348034567890",
			Address:       "123 Main Street, Lagos, Nigeria",
			ReceiveAlerts: true, ReceiveReports: true, ReportFrequency: "WEEKLY",
		},
		{
			Name: "Sarah Johnson", Email: "sarah.j@example.com",
			Phone: "+2348098765432", WhatsappNumber: "+2348098765432",
			Address:       "45 Victoria Island, Lagos, Nigeria",
			ReceiveAlerts: true, ReceiveReports: false, ReportFrequency: "MONTHLY",
		},
		{
			Name: "ABC Corporation", Email: "admin@abc-corp.com",
			Phone: "+2347012345678", WhatsappNumber: "+2347012345678",
			Address:       "Plot 10, Industrial Estate, Abuja, Nigeria",
			ReceiveAlerts: true, ReceiveReports: true, ReportFrequency: "DAILY",
		},
	}

	assignments := [][]int{{0}, {1}, {2, 0}}

	var clients []model.Client
	for i, c := range clientsData {
		existing, err := g.store.GetClientByName(c.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up client %q: %w", c.Name, err)
		}
		if existing != nil {
			c = *existing
		} else {
			id, err := g.store.CreateClient(c)
			if err != nil {
				return nil, fmt.Errorf("failed to create client %q: %w", c.Name, err)
			}
			c.ID = id
		}

		// Assignments run for existing clients too: a clear wipes the
		// join table while the clients themselves survive.
		for _, di := range assignments[i] {
			if di >= len(devices) {
				continue
			}
			err := g.store.AssignDeviceToClient(c.ID, devices[di].ID)
			if err != nil && !errors.Is(err, db.ErrDuplicate) {
				return nil, fmt.Errorf("failed to assign device to %q: %w", c.Name, err)
			}
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// loadMultiplier scales the shared load curve per device.
func loadMultiplier(deviceID string) float64 {
	switch deviceID {
	case "INVERTER_01":
		return 1.0
	case "INVERTER_02":
		return 0.6
	default:
		return 0.8
	}
}

// basePowerForHour returns a realistic base consumption in watts for the
// time of day: low overnight, ramping through the morning, peaking in
// the evening.
func (g *generator) basePowerForHour(hour int) float64 {
	switch {
	case hour < 5:
		return g.uniform(300, 600)
	case hour < 8:
		return g.uniform(800, 1200)
	case hour < 12:
		return g.uniform(1200, 1800)
	case hour < 17:
		return g.uniform(1000, 1500)
	case hour < 22:
		return g.uniform(1800, 2500)
	default:
		return g.uniform(600, 1000)
	}
}

func (g *generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *generator) powerReadingAt(device model.Device, ts time.Time) model.PowerReading {
	power := g.basePowerForHour(ts.Hour())*loadMultiplier(device.DeviceID) + g.uniform(-100, 100)
	voltage := 220 + g.uniform(-5, 5)
	current := 0.0
	if voltage > 0 {
		current = power / voltage
	}

	batteryVoltage := 12.5 + g.uniform(-1.0, 1.5)
	soc := clampSOC((batteryVoltage - 10.5) / (14.5 - 10.5) * 100)

	return model.PowerReading{
		DeviceID:       device.DeviceID,
		Voltage:        voltage,
		Current:        current,
		Power:          power,
		Frequency:      50 + g.uniform(-0.3, 0.3),
		PowerFactor:    0.90 + g.uniform(-0.05, 0.08),
		BatteryVoltage: batteryVoltage,
		BatterySOC:     soc,
		Timestamp:      ts,
	}
}

func clampSOC(soc float64) float64 {
	if soc < 0 {
		return 0
	}
	if soc > 100 {
		return 100
	}
	return soc
}

// generatePowerReadings writes a reading every 5 minutes for each
// historical day plus one per minute for the last hour, and rolls each
// full day up into a daily_consumption row priced at the given tariff.
func (g *generator) generatePowerReadings(device model.Device, days int, tariff model.EnergyTariff) (int, error) {
	count := 0
	for dayOffset := days; dayOffset > 0; dayOffset-- {
		day := g.now.AddDate(0, 0, -dayOffset)

		var dayReadings []model.PowerReading
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute += 5 {
				ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
				dayReadings = append(dayReadings, g.powerReadingAt(device, ts))
			}
		}
		if err := g.store.InsertPowerReadings(dayReadings); err != nil {
			return count, fmt.Errorf("failed to insert power readings for %s: %w", device.DeviceID, err)
		}
		count += len(dayReadings)

		if err := g.rollUpDay(device, day, dayReadings, tariff); err != nil {
			return count, err
		}
	}

	// Recent readings: the last hour at one-minute resolution.
	var recent []model.PowerReading
	for minutesAgo := 60; minutesAgo > 0; minutesAgo-- {
		ts := g.now.Add(-time.Duration(minutesAgo) * time.Minute)
		recent = append(recent, g.powerReadingAt(device, ts))
	}
	if err := g.store.InsertPowerReadings(recent); err != nil {
		return count, fmt.Errorf("failed to insert recent readings for %s: %w", device.DeviceID, err)
	}
	count += len(recent)

	return count, nil
}

// rollUpDay summarizes one day of readings into daily_consumption.
// With a reading every 5 minutes, kWh = sum(W) * (5/60) / 1000.
func (g *generator) rollUpDay(device model.Device, day time.Time, readings []model.PowerReading, tariff model.EnergyTariff) error {
	if len(readings) == 0 {
		return nil
	}
	var sum, peak float64
	min := readings[0].Power
	for _, r := range readings {
		sum += r.Power
		if r.Power > peak {
			peak = r.Power
		}
		if r.Power < min {
			min = r.Power
		}
	}
	totalKwh := sum * (5.0 / 60.0) / 1000.0

	c := model.DailyConsumption{
		DeviceID:         device.DeviceID,
		Date:             time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		TotalConsumption: totalKwh,
		AvgPower:         sum / float64(len(readings)),
		PeakPower:        peak,
		MinPower:         min,
		TotalCost:        totalKwh * tariff.RatePerKwh,
	}
	if err := g.store.InsertDailyConsumption(c); err != nil {
		// A rollup for this device/day already exists from a previous
		// run; keep the original.
		if errors.Is(err, db.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to insert daily consumption for %s: %w", device.DeviceID, err)
	}
	return nil
}

// generateBatteryReadings writes a battery snapshot every 15 minutes,
// charging during daylight (09:00-17:00) and discharging otherwise.
func (g *generator) generateBatteryReadings(device model.Device, days int) (int, error) {
	count := 0
	for dayOffset := days; dayOffset > 0; dayOffset-- {
		day := g.now.AddDate(0, 0, -dayOffset)

		var readings []model.BatteryReading
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute += 15 {
				ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())

				var voltage float64
				charging := hour >= 9 && hour < 17
				if charging {
					voltage = 13.5 + g.uniform(-0.5, 0.5)
				} else {
					voltage = 12.0 + g.uniform(-0.5, 0.5)
				}

				readings = append(readings, model.BatteryReading{
					DeviceID:    device.DeviceID,
					Voltage:     voltage,
					SOC:         clampSOC((voltage - 10.5) / (14.5 - 10.5) * 100),
					IsCharging:  charging,
					Temperature: 25 + g.uniform(-5, 10),
					Timestamp:   ts,
				})
			}
		}
		if err := g.store.InsertBatteryReadings(readings); err != nil {
			return count, fmt.Errorf("failed to insert battery readings for %s: %w", device.DeviceID, err)
		}
		count += len(readings)
	}
	return count, nil
}

// generateAlerts writes the fixed demonstration alert scenarios.
func (g *generator) generateAlerts(device model.Device) (int, error) {
	alertsData := []struct {
		alertType string
		message   string
		value     float64
		severity  string
		status    string
		hoursAgo  int
	}{
		{"VOLTAGE_HIGH", "Voltage exceeded maximum threshold of 250V", 252.3, model.SeverityWarning, model.AlertResolved, 48},
		{"CURRENT_HIGH", "Current exceeded maximum limit of 25A", 26.8, model.SeverityWarning, model.AlertAcknowledged, 24},
		{"BATTERY_LOW", "Battery level critically low", 18.5, model.SeverityCritical, model.AlertActive, 2},
		{"FREQUENCY_ABNORMAL", "Frequency out of normal range", 47.8, model.SeverityWarning, model.AlertActive, 1},
		{"POWER_FACTOR_LOW", "Low power factor detected", 0.82, model.SeverityInfo, model.AlertActive, 12},
	}

	count := 0
	for _, a := range alertsData {
		ts := g.now.Add(-time.Duration(a.hoursAgo) * time.Hour)
		alert := model.Alert{
			DeviceID:  device.DeviceID,
			AlertType: a.alertType,
			Message:   a.message,
			Value:     a.value,
			Severity:  a.severity,
			Status:    a.status,
			Timestamp: ts,
		}
		if a.status == model.AlertResolved {
			alert.ResolvedAt = ts.Add(time.Duration(1+g.rng.Intn(6)) * time.Hour)
		}
		if err := g.store.InsertAlert(alert); err != nil {
			return count, fmt.Errorf("failed to insert alert for %s: %w", device.DeviceID, err)
		}
		count++
	}
	return count, nil
}

// generateWhatsAppMessages queues demo notifications: the most recent
// alerts forwarded to the clients that receive them, plus a weekly
// report summary for the first two. The first three alert forwards are
// marked sent, the rest failed, so the dashboard has both outcomes to
// show.
func (g *generator) generateWhatsAppMessages(devices []model.Device, clients []model.Client) (int, error) {
	deviceNames := make(map[string]string, len(devices))
	for _, d := range devices {
		deviceNames[d.DeviceID] = d.DeviceName
	}

	var recipients []model.Client
	for _, c := range clients {
		if c.ReceiveAlerts && c.WhatsappNumber != "" {
			recipients = append(recipients, c)
		}
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	alerts, err := g.store.ListAlerts(5)
	if err != nil {
		return 0, fmt.Errorf("failed to list alerts for notifications: %w", err)
	}

	count := 0
	for i, alert := range alerts {
		if i >= len(recipients) {
			break
		}
		client := recipients[i]

		name := deviceNames[alert.DeviceID]
		if name == "" {
			name = "Unknown"
		}
		text := fmt.Sprintf(`🚨 *%s ALERT*

*Device:* %s
*Type:* %s
*Message:* %s

*Time:* %s

_Power Monitoring System_`,
			alert.Severity, name, alert.AlertType, alert.Message,
			alert.Timestamp.Format("2006-01-02 15:04:05"))

		msg := model.WhatsAppMessage{
			Recipient:   client.WhatsappNumber,
			Message:     text,
			MessageType: "alert",
			AlertID:     alert.ID,
			ClientID:    client.ID,
			Status:      model.MessageSent,
		}
		if i < 3 {
			msg.SentAt = alert.Timestamp
		} else {
			msg.Status = model.MessageFailed
		}
		if err := g.store.InsertWhatsAppMessage(msg); err != nil {
			return count, fmt.Errorf("failed to insert alert message for %q: %w", client.Name, err)
		}
		count++
	}

	for i, client := range recipients {
		if i >= 2 {
			break
		}
		text := fmt.Sprintf(`📊 *Weekly Energy Report*

*Client:* %s
*Period:* Last 7 days

*Consumption:* 45.2 kWh
*Cost:* ₦2,938.00

_Full report available in dashboard_
_Power Monitoring System_`, client.Name)

		msg := model.WhatsAppMessage{
			Recipient:   client.WhatsappNumber,
			Message:     text,
			MessageType: "report",
			ClientID:    client.ID,
			Status:      model.MessageSent,
			SentAt:      g.now.Add(-2 * time.Hour),
		}
		if err := g.store.InsertWhatsAppMessage(msg); err != nil {
			return count, fmt.Errorf("failed to insert report message for %q: %w", client.Name, err)
		}
		count++
	}

	return count, nil
}

// printSummary reports what the store now holds.
func (g *generator) printSummary(devices []model.Device) error {
	type counter struct {
		label string
		fn    func() (int, error)
	}
	counters := []counter{
		{"Devices", g.store.CountDevices},
		{"Clients", g.store.CountClients},
		{"Power Readings", g.store.CountPowerReadings},
		{"Battery Readings", g.store.CountBatteryReadings},
		{"Daily Consumption", g.store.CountDailyConsumption},
		{"Alerts", g.store.CountAlerts},
		{"WhatsApp Messages", g.store.CountWhatsAppMessages},
		{"Tariffs", g.store.CountTariffs},
	}

	fmt.Fprintln(g.out, "\nData Summary:")
	for _, c := range counters {
		n, err := c.fn()
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "  %s: %d\n", c.label, n)
	}

	active, err := g.store.CountAlertsBySeverityStatus("", model.AlertActive)
	if err != nil {
		return err
	}
	critical, err := g.store.CountAlertsBySeverityStatus(model.SeverityCritical, model.AlertActive)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.out, "\nAlert Status:")
	fmt.Fprintf(g.out, "  Active: %d\n", active)
	fmt.Fprintf(g.out, "  Critical: %d\n", critical)

	if len(devices) > 0 {
		latest, err := g.store.LatestPowerReading(devices[0].DeviceID)
		if err != nil {
			return err
		}
		if latest != nil {
			fmt.Fprintln(g.out, "\nLatest Reading:")
			fmt.Fprintf(g.out, "  Device: %s\n", devices[0].DeviceName)
			fmt.Fprintf(g.out, "  Power: %.2f W\n", latest.Power)
			fmt.Fprintf(g.out, "  Voltage: %.2f V\n", latest.Voltage)
			fmt.Fprintf(g.out, "  Battery SoC: %.1f%%\n", latest.BatterySOC)
		}
	}
	return nil
}
