package calibration

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/petokpredict/server/internal/domain/models"
)

// ErrEmptyAdvice is returned when a payload carries nothing to merge;
// the store is left untouched so the caller can report the failure.
var ErrEmptyAdvice = errors.New("advice payload is empty")

// HydrateFromAdvice merges an advisor payload into the calibration.
// The payload is untrusted: every numeric field is normalized and
// clamped before acceptance, absent fields leave the current value
// unchanged, and the notes text is rebuilt (not appended) from the
// schedule and heating details. Re-applying a byte-identical payload
// yields the same record apart from the sync timestamp.
func (s *Store) HydrateFromAdvice(payload *models.AdvicePayload, now time.Time) error {
	if payload.IsZero() {
		return ErrEmptyAdvice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := &s.settings

	if age := finiteNum(payload.HarvestAgeDays); age != nil && *age > 0 {
		set.HarvestAgeDays = int(math.Round(*age))
	}
	if v := finiteNum(payload.DressingPct); v != nil {
		set.DressingPct = clamp(normalizePct(*v), models.DressingMin, models.DressingMax)
	}
	if v := finiteNum(payload.ProcessCostIDR); v != nil {
		set.ProcessCostPerBird = math.Max(0, *v)
	}
	if v := finiteNum(payload.WastagePct); v != nil {
		set.WastagePct = clamp(normalizePct(*v), 0, models.WastageMax)
	}
	if v := finiteNum(payload.ShrinkagePct); v != nil {
		set.ShrinkagePct = clamp(normalizePct(*v), 0, models.ShrinkageMax)
	}
	if payload.Basis == string(models.BasisCarcass) || payload.Basis == string(models.BasisLive) {
		set.Basis = models.Basis(payload.Basis)
	}

	// The UI exposes one combined energy slider, so the heating and
	// electricity estimates are folded into the single heating field.
	// A fresh heating estimate replaces the total; a fresh electricity
	// cost is added on top, after backing out the previously merged
	// electricity recorded in the meta so repeated hydration of the
	// same payload stays stable. The back-out only runs when the
	// payload restates an energy figure; payloads without one leave
	// the combined cost untouched.
	var heatingEstimate *float64
	if payload.Heating != nil {
		heatingEstimate = finiteNum(payload.Heating.EstimatedCostIDR)
		set.AdviceMeta.Heating = &models.HeatingDetail{
			Bulbs:        payload.Heating.Bulbs,
			WattPerBulb:  payload.Heating.WattPerBulb,
			HoursPerDay:  payload.Heating.HoursPerDay,
			Days:         payload.Heating.Days,
			OtherDevices: payload.Heating.OtherDevices,
		}
	}
	var electricityCost *float64
	if payload.Electricity != nil {
		electricityCost = finiteNum(payload.Electricity.CostIDR)
	}
	if heatingEstimate != nil || electricityCost != nil {
		energyTotal := set.HeatingCost
		if set.AdviceMeta.Electricity != nil {
			energyTotal = math.Max(0, energyTotal-set.AdviceMeta.Electricity.Cost)
			set.AdviceMeta.Electricity = nil
		}
		if heatingEstimate != nil {
			energyTotal = math.Max(0, *heatingEstimate)
		}
		if electricityCost != nil {
			cost := math.Max(0, *electricityCost)
			energyTotal += cost
			set.AdviceMeta.Electricity = &models.ElectricityDetail{
				KWh:  payload.Electricity.KWh,
				Cost: cost,
			}
		}
		set.HeatingCost = energyTotal
	}
	set.ElectricityCost = 0

	if payload.Vaccines != nil {
		if v := finiteNum(payload.Vaccines.TotalCostIDR); v != nil {
			set.VaccineCost = math.Max(0, *v)
		}
		set.AdviceMeta.Vaccines = payload.Vaccines.Items
	}
	if v := finiteNum(payload.LaborCostIDR); v != nil {
		set.LaborCost = math.Max(0, *v)
	}
	if v := finiteNum(payload.OverheadCostIDR); v != nil {
		set.OverheadCost = math.Max(0, *v)
	}
	if v := finiteNum(payload.TransportCostIDR); v != nil {
		set.TransportCost = math.Max(0, *v)
	}

	set.Notes = buildNotes(set.AdviceMeta, payload.Notes)
	syncedAt := now
	set.AdviceMeta.LastSync = &syncedAt
	snapshot := *payload
	set.AdviceMeta.Snapshot = &snapshot

	return nil
}

// buildNotes rebuilds the derived notes text from the vaccine schedule,
// the heater summary, extra devices and the advisor's free text. Each
// hydration replaces the notes fully.
func buildNotes(meta models.AdviceMeta, freeText string) string {
	var sections []string

	if len(meta.Vaccines) > 0 {
		lines := make([]string, 0, len(meta.Vaccines))
		for _, item := range meta.Vaccines {
			day := "?"
			if item.Day != nil {
				day = fmt.Sprintf("%d", *item.Day)
			}
			name := item.Name
			if name == "" {
				name = "Vaksin"
			}
			dose := item.Dose
			if dose == "" {
				dose = "dosis"
			}
			lines = append(lines, fmt.Sprintf("• Hari %s: %s (%s)", day, name, dose))
		}
		sections = append(sections, "Jadwal vaksin:\n"+strings.Join(lines, "\n"))
	}

	if h := meta.Heating; h != nil {
		sections = append(sections, fmt.Sprintf(
			"Pemanas: %s bohlam @%sW, %s jam/hari selama %s hari.",
			orQuestion(h.Bulbs), orQuestionF(h.WattPerBulb), orQuestionF(h.HoursPerDay), orQuestion(h.Days)))
		if len(h.OtherDevices) > 0 {
			sections = append(sections, "Perangkat tambahan: "+strings.Join(h.OtherDevices, ", "))
		}
	}

	if freeText != "" {
		sections = append(sections, freeText)
	}

	return strings.Join(sections, "\n\n")
}

// normalizePct accepts both fraction (0.07) and percent (7) encodings;
// anything above 1 is treated as a 0-100 value.
func normalizePct(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

func finiteNum(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

func orQuestion(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *v)
}

func orQuestionF(v *float64) string {
	if v == nil {
		return "?"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", *v), "0"), ".")
}
