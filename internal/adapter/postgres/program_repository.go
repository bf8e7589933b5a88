package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"adsync/internal/core/domain"
)

// ProgramRepository implements port.ProgramRepository using pgxpool for
// PostgreSQL.
type ProgramRepository struct {
	pool *pgxpool.Pool
}

// NewProgramRepository returns a new repository instance.
func NewProgramRepository(pool *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{pool: pool}
}

// ListProgramIDs returns every program id stored for owner.
func (r *ProgramRepository) ListProgramIDs(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT program_id FROM programs WHERE owner = $1`, owner)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

const createStage = `
CREATE TEMP TABLE program_stage (
    is_new             BOOLEAN,
    program_id         TEXT,
    program_type       TEXT,
    status             TEXT,
    program_status     TEXT,
    paused             BOOLEAN,
    business_ref       TEXT,
    start_date         DATE,
    end_date           DATE,
    budget             NUMERIC(14, 2),
    currency           TEXT,
    bid_strategy       TEXT,
    max_bid            NUMERIC(14, 2),
    impressions        BIGINT,
    clicks             BIGINT,
    cost               NUMERIC(14, 2),
    active_features    TEXT[],
    available_features TEXT[],
    metadata           JSONB
) ON COMMIT DROP`

var stageColumns = []string{
	"is_new", "program_id", "program_type", "status", "program_status", "paused",
	"business_ref", "start_date", "end_date", "budget", "currency", "bid_strategy",
	"max_bid", "impressions", "clicks", "cost", "active_features", "available_features",
	"metadata",
}

const upsertColumns = `owner, program_id, program_type, status, program_status, paused,
    business_ref, start_date, end_date, budget, currency, bid_strategy, max_bid,
    impressions, clicks, cost, active_features, available_features, metadata, synced_at`

const stageSelect = `SELECT $1, program_id, program_type, status, program_status, paused,
    business_ref, start_date, end_date, budget, currency, bid_strategy, max_bid,
    impressions, clicks, cost,
    COALESCE(active_features, '{}'), COALESCE(available_features, '{}'),
    metadata, now()
FROM program_stage`

const insertStaged = `INSERT INTO programs (` + upsertColumns + `)
` + stageSelect + ` WHERE is_new
ON CONFLICT (owner, program_id) DO NOTHING`

// The business key is cleared when the referenced business changes so that
// the next link pass resolves it again. Unchanged rows are left alone.
const updateStaged = `INSERT INTO programs (` + upsertColumns + `)
` + stageSelect + ` WHERE NOT is_new
ON CONFLICT (owner, program_id) DO UPDATE SET
    program_type       = EXCLUDED.program_type,
    status             = EXCLUDED.status,
    program_status     = EXCLUDED.program_status,
    paused             = EXCLUDED.paused,
    business_ref       = EXCLUDED.business_ref,
    business_pk        = CASE WHEN programs.business_ref IS DISTINCT FROM EXCLUDED.business_ref
                              THEN NULL ELSE programs.business_pk END,
    start_date         = EXCLUDED.start_date,
    end_date           = EXCLUDED.end_date,
    budget             = EXCLUDED.budget,
    currency           = EXCLUDED.currency,
    bid_strategy       = EXCLUDED.bid_strategy,
    max_bid            = EXCLUDED.max_bid,
    impressions        = EXCLUDED.impressions,
    clicks             = EXCLUDED.clicks,
    cost               = EXCLUDED.cost,
    active_features    = EXCLUDED.active_features,
    available_features = EXCLUDED.available_features,
    metadata           = EXCLUDED.metadata,
    synced_at          = EXCLUDED.synced_at
WHERE (programs.program_type, programs.status, programs.program_status, programs.paused,
       programs.business_ref, programs.start_date, programs.end_date, programs.budget,
       programs.currency, programs.bid_strategy, programs.max_bid, programs.impressions,
       programs.clicks, programs.cost, programs.active_features, programs.available_features,
       programs.metadata)
    IS DISTINCT FROM
      (EXCLUDED.program_type, EXCLUDED.status, EXCLUDED.program_status, EXCLUDED.paused,
       EXCLUDED.business_ref, EXCLUDED.start_date, EXCLUDED.end_date, EXCLUDED.budget,
       EXCLUDED.currency, EXCLUDED.bid_strategy, EXCLUDED.max_bid, EXCLUDED.impressions,
       EXCLUDED.clicks, EXCLUDED.cost, EXCLUDED.active_features, EXCLUDED.available_features,
       EXCLUDED.metadata)`

const deleteByIDs = `DELETE FROM programs WHERE owner = $1 AND program_id = ANY($2)`

// ApplyChanges writes changes for owner in one transaction: the records are
// copied into a staging table, then inserted, updated and deleted with one
// batched round trip. Updated counts only rows whose content changed.
func (r *ProgramRepository) ApplyChanges(ctx context.Context, owner string, changes domain.ChangeSet, today time.Time) (domain.ApplyCounts, error) {
	var counts domain.ApplyCounts
	if len(changes.Insert) == 0 && len(changes.Update) == 0 && len(changes.Delete) == 0 {
		return counts, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return counts, &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	staged := len(changes.Insert) + len(changes.Update)
	if staged > 0 {
		if _, err = tx.Exec(ctx, createStage); err != nil {
			return counts, &domain.PersistenceError{Op: "create stage", Err: err}
		}
		rows := make([][]any, 0, staged)
		for i := range changes.Insert {
			rows = append(rows, stageRow(true, &changes.Insert[i], today))
		}
		for i := range changes.Update {
			rows = append(rows, stageRow(false, &changes.Update[i], today))
		}
		if _, err = tx.CopyFrom(ctx, pgx.Identifier{"program_stage"}, stageColumns, pgx.CopyFromRows(rows)); err != nil {
			return counts, &domain.PersistenceError{Op: "copy programs", Err: err}
		}
		batch.Queue(insertStaged, owner)
		batch.Queue(updateStaged, owner)
	}
	if len(changes.Delete) > 0 {
		batch.Queue(deleteByIDs, owner, changes.Delete)
	}

	br := tx.SendBatch(ctx, batch)
	if staged > 0 {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return counts, &domain.PersistenceError{Op: "insert programs", Err: err}
		}
		counts.Inserted = tag.RowsAffected()
		if tag, err = br.Exec(); err != nil {
			_ = br.Close()
			return counts, &domain.PersistenceError{Op: "update programs", Err: err}
		}
		counts.Updated = tag.RowsAffected()
	}
	if len(changes.Delete) > 0 {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return counts, &domain.PersistenceError{Op: "delete programs", Err: err}
		}
		counts.Deleted = tag.RowsAffected()
	}
	if err = br.Close(); err != nil {
		return counts, &domain.PersistenceError{Op: "batch", Err: err}
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.ApplyCounts{}, &domain.PersistenceError{Op: "commit", Err: err}
	}
	return counts, nil
}

func stageRow(isNew bool, p *domain.Program, today time.Time) []any {
	end := p.EndDate
	if end != nil && domain.IsOpenEnded(*end) {
		end = nil
	}
	maxBid := p.MaxBid
	if p.BidStrategy != domain.BidManual {
		maxBid = nil
	}
	bid := p.BidStrategy
	if bid == "" {
		bid = domain.BidAutomatic
	}
	cost := p.Cost
	var ref *string
	if p.BusinessRef != "" {
		ref = &p.BusinessRef
	}
	var metadata any
	if len(p.Metadata) > 0 {
		metadata = p.Metadata
	}
	return []any{
		isNew,
		p.ProgramID,
		p.ProgramType,
		string(domain.DeriveStatus(p.Paused, p.Lifecycle, p.StartDate, end, today)),
		p.Lifecycle,
		p.Paused,
		ref,
		dateParam(p.StartDate),
		dateParam(end),
		moneyToNumeric(p.Budget),
		p.Currency,
		string(bid),
		moneyToNumeric(maxBid),
		p.Impressions,
		p.Clicks,
		moneyToNumeric(&cost),
		p.ActiveFeatures,
		p.AvailableFeatures,
		metadata,
	}
}

func dateParam(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: domain.DateOf(*t), Valid: true}
}

// LinkBusinesses resolves the business key of unlinked programs of owner.
// It must run after the referenced businesses were upserted.
func (r *ProgramRepository) LinkBusinesses(ctx context.Context, owner string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE programs p
SET business_pk = b.id
FROM businesses b
WHERE p.owner = $1
  AND p.business_pk IS NULL
  AND b.business_id = p.business_ref`, owner)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const selectPrograms = `
SELECT p.owner, p.program_id, p.program_type, p.program_status, p.paused,
       COALESCE(p.business_ref, ''), p.start_date, p.end_date, p.budget, p.currency,
       p.bid_strategy, p.max_bid, p.impressions, p.clicks, p.cost,
       p.active_features, p.available_features, p.metadata, p.status, b.name, p.synced_at
FROM programs p
LEFT JOIN businesses b ON b.id = p.business_pk`

// derivedStatus mirrors domain.DeriveStatus in SQL so that listings filter
// on the status as of today rather than as of the last sync. Open-ended
// programs are stored with a NULL end date.
const derivedStatus = `CASE
    WHEN p.paused THEN 'PAUSED'
    WHEN p.start_date > %[1]s THEN 'FUTURE'
    WHEN p.end_date < %[1]s THEN 'PAST'
    WHEN p.program_status = 'ACTIVE' THEN 'CURRENT'
    ELSE 'INACTIVE'
END`

// ListPrograms returns one page of programs matching filter ordered by
// program id, and the number of matches.
func (r *ProgramRepository) ListPrograms(ctx context.Context, filter domain.ProgramFilter) ([]domain.Program, int, error) {
	where, args := buildFilter(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM programs p LEFT JOIN businesses b ON b.id = p.business_pk WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Program{}, 0, nil
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.program_id LIMIT $%d OFFSET $%d", selectPrograms, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	programs, err := pgx.CollectRows(rows, scanProgram)
	if err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

func buildFilter(f domain.ProgramFilter) (string, []any) {
	conds := []string{"p.owner = $1"}
	args := []any{f.Owner}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, fmt.Sprintf("$%d", len(args))))
	}

	if f.Status != "" {
		args = append(args, pgtype.Date{Time: domain.DateOf(f.Today), Valid: true})
		today := fmt.Sprintf("$%d::date", len(args))
		add("("+fmt.Sprintf(derivedStatus, today)+") = %s", string(f.Status))
	}
	if f.ProgramType != "" {
		add("p.program_type = %s", f.ProgramType)
	}
	if f.BusinessRef != "" {
		add("p.business_ref = %s", f.BusinessRef)
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.program_id ILIKE $%d OR b.name ILIKE $%d)", n, n))
	}
	if f.StartFrom != nil {
		add("p.start_date >= %s", dateParam(f.StartFrom))
	}
	if f.EndTo != nil {
		add("p.end_date <= %s", dateParam(f.EndTo))
	}
	if f.MinBudget != nil {
		add("p.budget >= %s", moneyToNumeric(f.MinBudget))
	}
	if f.MaxBudget != nil {
		add("p.budget <= %s", moneyToNumeric(f.MaxBudget))
	}
	return strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetProgram returns a program or domain.ErrProgramNotFound.
func (r *ProgramRepository) GetProgram(ctx context.Context, owner, programID string) (*domain.Program, error) {
	rows, err := r.pool.Query(ctx, selectPrograms+` WHERE p.owner = $1 AND p.program_id = $2`, owner, programID)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProgram)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProgram(row pgx.CollectableRow) (domain.Program, error) {
	var (
		p                   domain.Program
		start, end          pgtype.Date
		budget, maxBid, cst pgtype.Numeric
		bid, status         string
	)
	err := row.Scan(
		&p.Owner,
		&p.ProgramID,
		&p.ProgramType,
		&p.Lifecycle,
		&p.Paused,
		&p.BusinessRef,
		&start,
		&end,
		&budget,
		&p.Currency,
		&bid,
		&maxBid,
		&p.Impressions,
		&p.Clicks,
		&cst,
		&p.ActiveFeatures,
		&p.AvailableFeatures,
		&p.Metadata,
		&status,
		&p.BusinessName,
		&p.SyncedAt,
	)
	if err != nil {
		return p, err
	}

	if start.Valid {
		p.StartDate = &start.Time
	}
	if end.Valid {
		p.EndDate = &end.Time
	}
	p.BidStrategy = domain.BidStrategy(bid)
	p.Status = domain.ProgramStatus(status)
	if p.Budget, err = numericToMoney(budget); err != nil {
		return p, fmt.Errorf("program %s budget: %w", p.ProgramID, err)
	}
	if p.MaxBid, err = numericToMoney(maxBid); err != nil {
		return p, fmt.Errorf("program %s max bid: %w", p.ProgramID, err)
	}
	cost, err := numericToMoney(cst)
	if err != nil {
		return p, fmt.Errorf("program %s cost: %w", p.ProgramID, err)
	}
	if cost != nil {
		p.Cost = *cost
	}
	return p, nil
}
