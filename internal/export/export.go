// Package export renders decision history as an XML document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/beevik/etree"
)

// DecisionsXML writes records to w as
// <decisions user="…" generated="…"><decision id="…">…</decision></decisions>
func DecisionsXML(w io.Writer, userID int64, records []models.DecisionRecord, now time.Time) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("decisions")
	root.CreateAttr("user", strconv.FormatInt(userID, 10))
	root.CreateAttr("generated", now.UTC().Format(time.RFC3339))

	for _, rec := range records {
		var res decision.Result
		if err := json.Unmarshal(rec.Result, &res); err != nil {
			return fmt.Errorf("decision %d: failed to decode result: %w", rec.ID, err)
		}

		el := root.CreateElement("decision")
		el.CreateAttr("id", strconv.FormatInt(rec.ID, 10))
		el.CreateAttr("category", rec.Category)
		el.CreateAttr("created", rec.CreatedAt.UTC().Format(time.RFC3339))

		el.CreateElement("tier").SetText(res.Tier.String())
		el.CreateElement("risk-level").SetText(strconv.Itoa(res.RiskLevel))
		el.CreateElement("impact").SetText(res.ImpactSummary)
		el.CreateElement("recommendation").SetText(res.Recommendation)
		el.CreateElement("monthly-impact").SetText(res.MonthlyImpact.StringFixed(2))
		el.CreateElement("annual-savings-impact").SetText(res.AnnualSavingsImpact.StringFixed(2))
		if res.TimeToRecoverMonths != nil {
			el.CreateElement("time-to-recover-months").SetText(strconv.FormatInt(*res.TimeToRecoverMonths, 10))
		}
		if len(res.Alternatives) > 0 {
			alts := el.CreateElement("alternatives")
			for _, a := range res.Alternatives {
				alts.CreateElement("alternative").SetText(a)
			}
		}

		params := el.CreateElement("input")
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec.Input, &fields); err != nil {
			return fmt.Errorf("decision %d: failed to decode input: %w", rec.ID, err)
		}
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			// amounts are stored as JSON strings or numbers
			var v json.Number
			if err := json.Unmarshal(fields[name], &v); err != nil {
				return fmt.Errorf("decision %d: field %s is not a number: %w", rec.ID, name, err)
			}
			p := params.CreateElement("param")
			p.CreateAttr("name", name)
			p.SetText(v.String())
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}
