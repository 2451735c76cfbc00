// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	apperrors "supplier-search/internal/common/errors"
	"supplier-search/internal/common/logger"
	"supplier-search/internal/models"
	"supplier-search/internal/search/predicate"
)

// listingColumns is the select list in scan order. Optional columns are
// nullable in the table, so they are coalesced to keep the scan on plain
// strings.
const listingColumns = "id, name, classification, description, capabilities, categories, products, certifications, address, " +
	"COALESCE(hq_address, ''), COALESCE(gst_number, ''), COALESCE(phone, ''), COALESCE(email, ''), COALESCE(website, '')"

// columnFor whitelists predicate fields against table columns. Field names
// and columns coincide today but the map keeps SQL construction closed.
var columnFor = map[predicate.Field]string{
	predicate.FieldName:           "name",
	predicate.FieldClassification: "classification",
	predicate.FieldDescription:    "description",
	predicate.FieldCapabilities:   "capabilities",
	predicate.FieldCategories:     "categories",
	predicate.FieldProducts:       "products",
	predicate.FieldCertifications: "certifications",
	predicate.FieldAddress:        "address",
	predicate.FieldHQAddress:      "hq_address",
	predicate.FieldGSTNumber:      "gst_number",
}

// PostgresStore executes listing predicates as parameterized SQL.
type PostgresStore struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewPostgres(db *sql.DB, table string, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		table:  table,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
	}
}

func (s *PostgresStore) Query(ctx context.Context, p *predicate.Predicate, offset, limit int) ([]models.Listing, int, error) {
	where, args, err := buildWhere(p)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.table, where)
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, apperrors.NewStoreTimeoutError()
		}
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY LOWER(name) ASC, id ASC LIMIT $%d OFFSET $%d",
		listingColumns, s.table, where, len(args)+1, len(args)+2,
	)
	rows, err := s.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, apperrors.NewStoreTimeoutError()
		}
		return nil, 0, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Classification, &l.Description,
			&l.Capabilities, &l.Categories, &l.Products, &l.Certifications,
			&l.Address, &l.HQAddress, &l.GSTNumber,
			&l.Phone, &l.Email, &l.Website,
		); err != nil {
			return nil, 0, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listings: %w", err)
	}

	return listings, total, nil
}

// buildWhere renders the predicate as a parameterized WHERE clause.
// Each group becomes a parenthesized OR, groups are ANDed together.
func buildWhere(p *predicate.Predicate) (string, []interface{}, error) {
	if p.IsEmpty() {
		return "", nil, nil
	}

	var groups []string
	var args []interface{}

	for _, group := range p.All {
		var conds []string
		for _, cond := range group.Any {
			col, ok := columnFor[cond.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown predicate field %q", cond.Field)
			}

			switch cond.Op {
			case predicate.OpEquals:
				args = append(args, cond.Value)
				conds = append(conds, fmt.Sprintf("LOWER(%s) = LOWER($%d)", col, len(args)))
			case predicate.OpNotNull:
				conds = append(conds, fmt.Sprintf("(%s IS NOT NULL AND %s <> '')", col, col))
			default: // OpContains
				args = append(args, "%"+escapeLike(cond.Value)+"%")
				conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
			}
		}
		groups = append(groups, "("+strings.Join(conds, " OR ")+")")
	}

	return " WHERE " + strings.Join(groups, " AND "), args, nil
}

// escapeLike neutralizes LIKE metacharacters so user terms match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
