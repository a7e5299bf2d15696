package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/goserg/ratingengine/gen/model"
	"github.com/goserg/ratingengine/gen/table"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/migrate"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	. "github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Storage keeps ratings and brackets in a single sqlite file.
type Storage struct {
	repo
	conn *sql.DB
	log  *logrus.Entry
}

var _ storage.Storage = (*Storage)(nil)

// repo runs queries either directly on the connection or inside a transaction.
type repo struct {
	db qrm.DB
}

var _ storage.Repository = (*repo)(nil)

func New(log *logrus.Logger, file string) (*Storage, error) {
	l := log.WithField("from", "sqlite")
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	err = conn.Ping()
	if err != nil {
		return nil, err
	}
	err = migrate.Up(conn)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	l.WithField("file", file).Debug("database ready")
	return &Storage{
		repo: repo{db: conn},
		conn: conn,
		log:  l,
	}, nil
}

func (s *Storage) Close() error {
	return s.conn.Close()
}

// Atomic runs fn in a transaction. The repository handed to fn must not escape it.
func (s *Storage) Atomic(ctx context.Context, fn func(repo storage.Repository) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	err = fn(&repo{db: tx})
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.WithError(rbErr).Error("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

func (r *repo) GetRating(ctx context.Context, competitorID uuid.UUID, scope domain.Scope) (domain.Rating, error) {
	var rating model.Ratings
	err := table.Ratings.
		SELECT(table.Ratings.AllColumns).
		FROM(table.Ratings).
		WHERE(table.Ratings.CompetitorID.EQ(String(competitorID.String())).
			AND(table.Ratings.Scope.EQ(String(string(scope))))).
		QueryContext(ctx, r.db, &rating)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Rating{}, storage.ErrNotFound
		}
		return domain.Rating{}, err
	}
	var history []model.RatingHistory
	err = table.RatingHistory.
		SELECT(table.RatingHistory.AllColumns).
		FROM(table.RatingHistory).
		WHERE(table.RatingHistory.CompetitorID.EQ(String(competitorID.String())).
			AND(table.RatingHistory.Scope.EQ(String(string(scope))))).
		ORDER_BY(table.RatingHistory.ID.ASC()).
		QueryContext(ctx, r.db, &history)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return domain.Rating{}, err
	}
	return convertRatingToDomain(rating, history)
}

// SaveRating upserts the rating and appends the history entries that are not stored yet.
func (r *repo) SaveRating(ctx context.Context, rating domain.Rating) error {
	m := convertRatingFromDomain(rating)
	res, err := table.Ratings.
		UPDATE(table.Ratings.MutableColumns).
		MODEL(m).
		WHERE(table.Ratings.CompetitorID.EQ(String(m.CompetitorID)).
			AND(table.Ratings.Scope.EQ(String(m.Scope)))).
		ExecContext(ctx, r.db)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		_, err = table.Ratings.
			INSERT(table.Ratings.AllColumns).
			MODEL(m).
			ExecContext(ctx, r.db)
		if err != nil {
			return err
		}
	}

	var stored struct {
		Count int64 `alias:"count"`
	}
	err = SELECT(COUNT(STAR).AS("count")).
		FROM(table.RatingHistory).
		WHERE(table.RatingHistory.CompetitorID.EQ(String(m.CompetitorID)).
			AND(table.RatingHistory.Scope.EQ(String(m.Scope)))).
		QueryContext(ctx, r.db, &stored)
	if err != nil {
		return err
	}
	if int(stored.Count) >= len(rating.History) {
		return nil
	}
	_, err = table.RatingHistory.
		INSERT(table.RatingHistory.MutableColumns).
		MODELS(convertHistoryFromDomain(rating, rating.History[stored.Count:])).
		ExecContext(ctx, r.db)
	return err
}

// ListRatings returns every rating of the scope ordered by current rating, highest first.
// An empty scope lists every scope.
func (r *repo) ListRatings(ctx context.Context, scope domain.Scope) ([]domain.Rating, error) {
	ratingsStmt := table.Ratings.
		SELECT(table.Ratings.AllColumns).
		FROM(table.Ratings)
	historyStmt := table.RatingHistory.
		SELECT(table.RatingHistory.AllColumns).
		FROM(table.RatingHistory)
	if scope != "" {
		ratingsStmt = ratingsStmt.WHERE(table.Ratings.Scope.EQ(String(string(scope))))
		historyStmt = historyStmt.WHERE(table.RatingHistory.Scope.EQ(String(string(scope))))
	}

	var ratings []model.Ratings
	err := ratingsStmt.
		ORDER_BY(table.Ratings.CurrentRating.DESC(), table.Ratings.CompetitorID.ASC()).
		QueryContext(ctx, r.db, &ratings)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	var history []model.RatingHistory
	err = historyStmt.
		ORDER_BY(table.RatingHistory.ID.ASC()).
		QueryContext(ctx, r.db, &history)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	type key struct {
		competitor string
		scope      string
	}
	byCompetitor := make(map[key][]model.RatingHistory)
	for _, h := range history {
		k := key{competitor: h.CompetitorID, scope: h.Scope}
		byCompetitor[k] = append(byCompetitor[k], h)
	}
	converted := make([]domain.Rating, 0, len(ratings))
	for _, m := range ratings {
		rating, err := convertRatingToDomain(m, byCompetitor[key{competitor: m.CompetitorID, scope: m.Scope}])
		if err != nil {
			return nil, err
		}
		converted = append(converted, rating)
	}
	return converted, nil
}

func (r *repo) CreateRatingChange(ctx context.Context, change domain.RatingChange) error {
	_, err := table.RatingChanges.
		INSERT(table.RatingChanges.MutableColumns).
		MODEL(convertRatingChangeFromDomain(change)).
		ExecContext(ctx, r.db)
	return err
}

// ListRatingChanges returns the changes of the scope in the order they were applied.
// An empty scope lists every scope.
func (r *repo) ListRatingChanges(ctx context.Context, scope domain.Scope) ([]domain.RatingChange, error) {
	stmt := table.RatingChanges.
		SELECT(table.RatingChanges.AllColumns).
		FROM(table.RatingChanges)
	if scope != "" {
		stmt = stmt.WHERE(table.RatingChanges.Scope.EQ(String(string(scope))))
	}
	var changes []model.RatingChanges
	err := stmt.
		ORDER_BY(table.RatingChanges.Seq.ASC()).
		QueryContext(ctx, r.db, &changes)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	return convertRatingChangesToDomain(changes)
}

func (r *repo) CreateBracket(ctx context.Context, b *domain.Bracket) error {
	_, err := table.Brackets.
		INSERT(table.Brackets.AllColumns).
		MODEL(convertBracketFromDomain(b)).
		ExecContext(ctx, r.db)
	if err != nil {
		return err
	}
	_, err = table.BracketParticipants.
		INSERT(table.BracketParticipants.AllColumns).
		MODELS(convertParticipantsFromDomain(b)).
		ExecContext(ctx, r.db)
	if err != nil {
		return err
	}
	matches := make([]model.BracketMatches, 0, len(b.Matches))
	for _, m := range b.Matches {
		matches = append(matches, convertMatchFromDomain(b.ID, m))
	}
	_, err = table.BracketMatches.
		INSERT(table.BracketMatches.AllColumns).
		MODELS(matches).
		ExecContext(ctx, r.db)
	return err
}

func (r *repo) GetBracket(ctx context.Context, id uuid.UUID) (*domain.Bracket, error) {
	return r.getBracket(ctx, table.Brackets.ID.EQ(String(id.String())))
}

func (r *repo) GetBracketByTournament(ctx context.Context, tournamentID uuid.UUID) (*domain.Bracket, error) {
	return r.getBracket(ctx, table.Brackets.TournamentID.EQ(String(tournamentID.String())))
}

// ListBrackets returns every bracket, oldest first.
func (r *repo) ListBrackets(ctx context.Context) ([]*domain.Bracket, error) {
	var rows []model.Brackets
	err := table.Brackets.
		SELECT(table.Brackets.AllColumns).
		FROM(table.Brackets).
		ORDER_BY(table.Brackets.CreatedAt.ASC(), table.Brackets.ID.ASC()).
		QueryContext(ctx, r.db, &rows)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	brackets := make([]*domain.Bracket, 0, len(rows))
	for _, row := range rows {
		b, err := r.loadBracket(ctx, row)
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	return brackets, nil
}

func (r *repo) getBracket(ctx context.Context, condition BoolExpression) (*domain.Bracket, error) {
	var b model.Brackets
	err := table.Brackets.
		SELECT(table.Brackets.AllColumns).
		FROM(table.Brackets).
		WHERE(condition).
		QueryContext(ctx, r.db, &b)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return r.loadBracket(ctx, b)
}

// loadBracket reads participants and matches of a bracket row.
func (r *repo) loadBracket(ctx context.Context, b model.Brackets) (*domain.Bracket, error) {
	var participants []model.BracketParticipants
	err := table.BracketParticipants.
		SELECT(table.BracketParticipants.AllColumns).
		FROM(table.BracketParticipants).
		WHERE(table.BracketParticipants.BracketID.EQ(String(b.ID))).
		ORDER_BY(table.BracketParticipants.Seed.ASC()).
		QueryContext(ctx, r.db, &participants)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	var matches []model.BracketMatches
	err = table.BracketMatches.
		SELECT(table.BracketMatches.AllColumns).
		FROM(table.BracketMatches).
		WHERE(table.BracketMatches.BracketID.EQ(String(b.ID))).
		QueryContext(ctx, r.db, &matches)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].Position < matches[j].Position
	})
	return convertBracketToDomain(b, participants, matches)
}

// UpdateBracket stores the bracket if nobody changed it since it was read
// and bumps b.Version on success.
func (r *repo) UpdateBracket(ctx context.Context, b *domain.Bracket) error {
	m := convertBracketFromDomain(b)
	m.Version++
	res, err := table.Brackets.
		UPDATE(table.Brackets.MutableColumns).
		MODEL(m).
		WHERE(table.Brackets.ID.EQ(String(m.ID)).
			AND(table.Brackets.Version.EQ(Int(int64(b.Version))))).
		ExecContext(ctx, r.db)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		_, err := r.GetBracket(ctx, b.ID)
		if err != nil {
			return err
		}
		return storage.ErrVersionConflict
	}
	for _, match := range b.Matches {
		mm := convertMatchFromDomain(b.ID, match)
		_, err = table.BracketMatches.
			UPDATE(table.BracketMatches.MutableColumns).
			MODEL(mm).
			WHERE(table.BracketMatches.BracketID.EQ(String(mm.BracketID)).
				AND(table.BracketMatches.MatchID.EQ(String(mm.MatchID)))).
			ExecContext(ctx, r.db)
		if err != nil {
			return err
		}
	}
	b.Version = int(m.Version)
	return nil
}
