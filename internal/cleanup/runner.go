package cleanup

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbutil "github.com/uiplatform/sidebar-cleanup/internal/db"
	"github.com/uiplatform/sidebar-cleanup/internal/models"
)

// Runner executes the cleanup pipeline against one database connection.
type Runner struct {
	db     *gorm.DB
	field  string
	dryRun bool
}

// Report summarizes one cleanup run.
type Report struct {
	Total     int    // Rows examined.
	Updated   int    // Rows rewritten.
	Skipped   int    // Rows already clean.
	Remaining int64  // Rows still containing the field after commit.
	Sample    string // Pretty-printed sample item, empty when unavailable.
}

// NewRunner constructs a Runner. Field must be non-empty.
func NewRunner(conn *gorm.DB, field string, dryRun bool) (*Runner, error) {
	if conn == nil {
		return nil, fmt.Errorf("cleanup: nil db")
	}
	if field == "" {
		return nil, fmt.Errorf("cleanup: empty target field")
	}
	return &Runner{db: conn, field: field, dryRun: dryRun}, nil
}

// Run reads every configuration, strips the target field, writes back the
// rows that changed inside a single transaction, then verifies the result.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	work := func(tx *gorm.DB) error {
		var rows []models.SidebarConfiguration
		if errFind := tx.WithContext(ctx).
			Select("id", "name", "configuration_data").
			Order("id ASC").
			Find(&rows).Error; errFind != nil {
			return fmt.Errorf("cleanup: fetch configurations: %w", errFind)
		}
		report.Total = len(rows)
		log.Infof("found %d configurations to process", len(rows))

		for _, row := range rows {
			changed, cleaned, errClean := r.cleanRow(row)
			if errClean != nil {
				return errClean
			}
			if !changed {
				report.Skipped++
				log.Infof("no changes needed: %s (%s)", row.Name, row.ID)
				continue
			}
			if r.dryRun {
				report.Updated++
				log.Infof("would update configuration: %s (%s)", row.Name, row.ID)
				continue
			}
			if errUpdate := tx.WithContext(ctx).
				Model(&models.SidebarConfiguration{}).
				Where("id = ?", row.ID).
				Updates(map[string]any{
					"configuration_data": datatypes.JSON(cleaned),
					"updated_at":         time.Now().UTC(),
				}).Error; errUpdate != nil {
				return fmt.Errorf("cleanup: update %s: %w", row.ID, errUpdate)
			}
			report.Updated++
			log.Infof("updated configuration: %s (%s)", row.Name, row.ID)
		}
		return nil
	}

	if r.dryRun {
		if err := work(r.db); err != nil {
			return nil, err
		}
	} else {
		if err := r.db.WithContext(ctx).Transaction(work); err != nil {
			return nil, err
		}
	}

	remaining, errVerify := r.Verify(ctx)
	if errVerify != nil {
		return nil, errVerify
	}
	report.Remaining = remaining

	sample, errSample := r.Sample(ctx)
	if errSample != nil {
		return nil, errSample
	}
	report.Sample = sample

	return report, nil
}

// cleanRow strips the target field from one row's document and reports
// whether the canonical form changed.
func (r *Runner) cleanRow(row models.SidebarConfiguration) (bool, []byte, error) {
	raw := []byte(row.ConfigurationData)
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil, nil
	}

	// UseNumber keeps integer scalars exact; plain Unmarshal would decode
	// them to float64 and corrupt values above 2^53 on write-back.
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var document any
	if errDecode := decoder.Decode(&document); errDecode != nil {
		return false, nil, fmt.Errorf("cleanup: decode configuration %s: %w", row.ID, errDecode)
	}

	original, errOriginal := CanonicalJSON(document)
	if errOriginal != nil {
		return false, nil, errOriginal
	}
	cleaned, errCleaned := CanonicalJSON(StripField(document, r.field))
	if errCleaned != nil {
		return false, nil, errCleaned
	}

	return !bytes.Equal(original, cleaned), cleaned, nil
}

// Verify counts rows whose serialized document still contains the target
// field name.
func (r *Runner) Verify(ctx context.Context) (int64, error) {
	var remaining int64
	if errCount := r.db.WithContext(ctx).
		Model(&models.SidebarConfiguration{}).
		Where(dbutil.JSONContainsExpr(r.db, "configuration_data"), "%"+r.field+"%").
		Count(&remaining).Error; errCount != nil {
		return 0, fmt.Errorf("cleanup: verify: %w", errCount)
	}
	return remaining, nil
}

// Sample fetches the first configuration's first section item and returns it
// pretty-printed for manual inspection. Returns empty when no such item
// exists.
func (r *Runner) Sample(ctx context.Context) (string, error) {
	expr := dbutil.JSONPathExpr(r.db, "configuration_data", "sections", "0", "items", "0")

	var row struct {
		Name       string
		SampleItem sql.NullString
	}
	result := r.db.WithContext(ctx).
		Model(&models.SidebarConfiguration{}).
		Select("name, " + expr + " AS sample_item").
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return "", fmt.Errorf("cleanup: sample: %w", result.Error)
	}
	if result.RowsAffected == 0 || !row.SampleItem.Valid || row.SampleItem.String == "" {
		return "", nil
	}

	var item any
	if errUnmarshal := json.Unmarshal([]byte(row.SampleItem.String), &item); errUnmarshal != nil {
		// Some drivers return bare scalars from JSON extraction; show as-is.
		return row.SampleItem.String, nil
	}
	pretty, errMarshal := json.MarshalIndent(item, "", "  ")
	if errMarshal != nil {
		return "", fmt.Errorf("cleanup: format sample: %w", errMarshal)
	}
	return string(pretty), nil
}
