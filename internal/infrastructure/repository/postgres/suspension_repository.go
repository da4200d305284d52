package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ligakit/competition-engine/internal/domain/suspension"
	qb "github.com/ligakit/competition-engine/internal/platform/querybuilder"
)

// SuspensionRepository persists suspension records. ReplaceBySeason performs
// the rebuild's atomic swap: inside one transaction it locks the season's
// ACTIVE and SERVED rows, updates the ones the rebuild reproduced (matched by
// fingerprint), archives the rest, and inserts the new ones. Readers observe
// either the fully-old or the fully-new set. Two concurrent rebuilds simply
// serialize on the row locks and the second commit re-archives the first's
// output, which converges because the fold is deterministic.
type SuspensionRepository struct {
	db *sqlx.DB
}

func NewSuspensionRepository(db *sqlx.DB) *SuspensionRepository {
	return &SuspensionRepository{db: db}
}

func (r *SuspensionRepository) ListBySeason(ctx context.Context, seasonID string, statuses ...string) ([]suspension.Record, error) {
	return r.listBySeason(ctx, r.db, seasonID, statuses...)
}

func (r *SuspensionRepository) listBySeason(ctx context.Context, q sqlx.QueryerContext, seasonID string, statuses ...string) ([]suspension.Record, error) {
	conditions := []qb.Condition{
		qb.Eq("season_public_id", seasonID),
		qb.IsNull("deleted_at"),
	}
	if len(statuses) > 0 {
		values := make([]any, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, s)
		}
		conditions = append(conditions, qb.In("status", values))
	}

	query, args, err := qb.Select("*").From("suspension_records").
		Where(conditions...).
		OrderBy("trigger_round", "trigger_match_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season suspensions query: %w", err)
	}

	var rows []suspensionTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season suspensions: %w", err)
	}

	out := make([]suspension.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSuspensionRow(row))
	}

	return out, nil
}

// ListCurrentByPlayer returns the player's ACTIVE and SERVED records. SERVED
// rows still matter to eligibility reads: a record credited by a later match
// can still suspend an earlier match that was postponed.
func (r *SuspensionRepository) ListCurrentByPlayer(ctx context.Context, seasonID, playerID string) ([]suspension.Record, error) {
	query, args, err := qb.Select("*").From("suspension_records").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("player_public_id", playerID),
			qb.In("status", []any{suspension.StatusActive, suspension.StatusServed}),
			qb.IsNull("deleted_at"),
		).
		OrderBy("trigger_round", "trigger_match_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list current suspensions query: %w", err)
	}

	var rows []suspensionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list current suspensions: %w", err)
	}

	out := make([]suspension.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSuspensionRow(row))
	}

	return out, nil
}

func (r *SuspensionRepository) ReplaceBySeason(ctx context.Context, seasonID string, records []suspension.Record) (suspension.ReplaceOutcome, error) {
	var outcome suspension.ReplaceOutcome

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return outcome, fmt.Errorf("begin tx replace season suspensions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("suspension_records").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.In("status", []any{suspension.StatusActive, suspension.StatusServed}),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return outcome, fmt.Errorf("build lock season suspensions query: %w", err)
	}

	var existing []suspensionTableModel
	if err := tx.SelectContext(ctx, &existing, lockQuery+" FOR UPDATE", lockArgs...); err != nil {
		return outcome, fmt.Errorf("lock season suspensions: %w", err)
	}

	existingByFingerprint := make(map[string]suspensionTableModel, len(existing))
	for _, row := range existing {
		rec := mapSuspensionRow(row)
		existingByFingerprint[rec.Fingerprint()] = row
	}

	reproduced := make(map[string]struct{}, len(records))
	for _, rec := range records {
		fingerprint := rec.Fingerprint()
		reproduced[fingerprint] = struct{}{}

		if row, ok := existingByFingerprint[fingerprint]; ok {
			updateQuery, updateArgs, err := qb.Update("suspension_records").
				Set("served_matches", rec.ServedMatches).
				Set("status", rec.Status).
				Set("card_event_ids", pq.StringArray(rec.CardEventIDs)).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", row.ID)).
				ToSQL()
			if err != nil {
				return outcome, fmt.Errorf("build update suspension query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
				return outcome, fmt.Errorf("update suspension player=%s: %w", rec.PlayerID, err)
			}
			outcome.Updated++
			continue
		}

		publicID := rec.ID
		if publicID == "" {
			publicID = fingerprint
		}
		insertModel := suspensionInsertModel{
			PublicID:        publicID,
			SeasonID:        seasonID,
			PlayerID:        rec.PlayerID,
			TeamID:          rec.TeamID,
			Reason:          rec.Reason,
			TriggerEventID:  rec.TriggerEventID,
			TriggerMatchID:  rec.TriggerMatchID,
			TriggerRound:    rec.TriggerRound,
			RequiredMatches: rec.RequiredMatches,
			ServedMatches:   rec.ServedMatches,
			Status:          rec.Status,
			CardEventIDs:    pq.StringArray(rec.CardEventIDs),
		}
		insertQuery, insertArgs, err := qb.InsertModel("suspension_records", insertModel, "")
		if err != nil {
			return outcome, fmt.Errorf("build insert suspension query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return outcome, fmt.Errorf("insert suspension player=%s: %w", rec.PlayerID, err)
		}
		outcome.Created++
	}

	for fingerprint, row := range existingByFingerprint {
		if _, ok := reproduced[fingerprint]; ok {
			continue
		}
		archiveQuery, archiveArgs, err := qb.Update("suspension_records").
			Set("status", suspension.StatusArchived).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", row.ID)).
			ToSQL()
		if err != nil {
			return outcome, fmt.Errorf("build archive suspension query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, archiveQuery, archiveArgs...); err != nil {
			return outcome, fmt.Errorf("archive suspension id=%d: %w", row.ID, err)
		}
		outcome.Archived++
	}

	if err := tx.Commit(); err != nil {
		return outcome, fmt.Errorf("commit replace season suspensions tx: %w", err)
	}
	return outcome, nil
}

func mapSuspensionRow(row suspensionTableModel) suspension.Record {
	return suspension.Record{
		ID:              row.PublicID,
		SeasonID:        row.SeasonID,
		PlayerID:        row.PlayerID,
		TeamID:          row.TeamID,
		Reason:          row.Reason,
		TriggerEventID:  row.TriggerEventID,
		TriggerMatchID:  row.TriggerMatchID,
		TriggerRound:    row.TriggerRound,
		RequiredMatches: row.RequiredMatches,
		ServedMatches:   row.ServedMatches,
		Status:          row.Status,
		CardEventIDs:    append([]string(nil), row.CardEventIDs...),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
